package model

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/opsio/esignpro-backend/pkg/logger"
)

// Response is the generic API envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the API error envelope: {"success":false,"error":"..."}
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func Success(data interface{}) Response {
	return Response{
		Success: true,
		Message: "success",
		Data:    data,
	}
}

func Error(message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   message,
	}
}

// DocumentPayload is the document body returned by generation and fetch routes
type DocumentPayload struct {
	ID            string `json:"id"`
	DocumentType  string `json:"document_type"`
	Content       string `json:"content,omitempty"`
	Base64        string `json:"base64,omitempty"`
	MimeType      string `json:"mime_type"`
	FileExtension string `json:"file_extension"`
	Saved         bool   `json:"saved"`
}

// DocumentResponse wraps a generated document: {"success":true,"document":{...}}
type DocumentResponse struct {
	Success  bool             `json:"success"`
	Document *DocumentPayload `json:"document"`
}

// HandleError logs the failing request with its context and replies with the
// structured error envelope
func HandleError(c *gin.Context, code int, err error, context ...string) {
	requestMethod := c.Request.Method
	requestPath := c.Request.URL.Path
	requestQuery := c.Request.URL.RawQuery
	clientIP := c.ClientIP()
	userAgent := c.Request.UserAgent()

	fullURL := requestPath
	if requestQuery != "" {
		fullURL = fmt.Sprintf("%s?%s", requestPath, requestQuery)
	}

	errorMsg := err.Error()
	if len(context) > 0 {
		errorMsg = fmt.Sprintf("%s: %v", context[0], err)
	}

	logger.Errorf(
		"Request error [%d]: %v\n"+
			"  Request: %s %s\n"+
			"  Client IP: %s\n"+
			"  User-Agent: %s",
		code,
		errorMsg,
		requestMethod,
		fullURL,
		clientIP,
		userAgent,
	)

	c.JSON(code, Error(errorMsg))
}
