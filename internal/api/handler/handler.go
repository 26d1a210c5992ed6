// Package handler re-exports the handler types from their feature
// subdirectories
package handler

import (
	adminHandler "github.com/opsio/esignpro-backend/internal/api/handler/admin"
	documentHandler "github.com/opsio/esignpro-backend/internal/api/handler/document"
	signatureHandler "github.com/opsio/esignpro-backend/internal/api/handler/signature"
)

// Document handlers
type DocumentHandler = documentHandler.DocumentHandler
type TemplateHandler = documentHandler.TemplateHandler

var NewDocumentHandler = documentHandler.NewDocumentHandler
var NewTemplateHandler = documentHandler.NewTemplateHandler

// Signature handlers
type SignatureHandler = signatureHandler.SignatureHandler

var NewSignatureHandler = signatureHandler.NewSignatureHandler

// Admin handlers
type SignatureAdminHandler = adminHandler.SignatureAdminHandler

var NewSignatureAdminHandler = adminHandler.NewSignatureAdminHandler
