// Package docx builds Word-compatible documents from an explicit
// paragraph/run object model and serializes them as an OOXML package
// (.docx). It covers the subset the document assembler needs: styled text
// runs, alignment, and fixed-size inline PNG images.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image/png"
	"strconv"
	"strings"
)

// EMU per pixel at 96 DPI
const emuPerPixel = 9525

// Paragraph alignment values
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Document is an ordered list of paragraphs plus the embedded media they
// reference
type Document struct {
	paragraphs []*Paragraph
	media      []mediaAsset
}

type mediaAsset struct {
	name string // file name under word/media/
	data []byte
}

// Paragraph is one block-level element
type Paragraph struct {
	doc       *Document
	alignment string
	spacing   int // twentieths of a point after the paragraph
	runs      []run
}

type run interface {
	renderXML(sb *strings.Builder)
}

// TextRun is a styled text fragment inside a paragraph
type TextRun struct {
	text   string
	bold   bool
	italic bool
	size   int // half-points; 0 means inherit
}

type imageRun struct {
	relID   string
	name    string
	index   int
	widthE  int64 // EMU
	heightE int64
}

// New creates an empty document
func New() *Document {
	return &Document{}
}

// AddParagraph appends an empty paragraph
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{doc: d}
	d.paragraphs = append(d.paragraphs, p)
	return p
}

// ParagraphCount returns the number of paragraphs added so far
func (d *Document) ParagraphCount() int {
	return len(d.paragraphs)
}

// Align sets the paragraph alignment
func (p *Paragraph) Align(alignment string) *Paragraph {
	p.alignment = alignment
	return p
}

// SpacingAfter sets the space after the paragraph in twentieths of a point
func (p *Paragraph) SpacingAfter(twips int) *Paragraph {
	p.spacing = twips
	return p
}

// AddText appends a text run to the paragraph
func (p *Paragraph) AddText(text string) *TextRun {
	r := &TextRun{text: text}
	p.runs = append(p.runs, r)
	return r
}

// Bold marks the run bold
func (r *TextRun) Bold() *TextRun {
	r.bold = true
	return r
}

// Italic marks the run italic
func (r *TextRun) Italic() *TextRun {
	r.italic = true
	return r
}

// Size sets the font size in points
func (r *TextRun) Size(points int) *TextRun {
	r.size = points * 2
	return r
}

// ValidatePNG checks that data decodes as a PNG image
func ValidatePNG(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty image data")
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("invalid PNG data: %w", err)
	}
	return nil
}

// AddImage embeds PNG bytes as a fixed-size inline image run. The bytes are
// validated as PNG before the media asset is registered; invalid bytes leave
// the paragraph unchanged and return an error so the caller can fall back.
func (p *Paragraph) AddImage(pngData []byte, widthPx, heightPx int) error {
	if err := ValidatePNG(pngData); err != nil {
		return err
	}
	if widthPx <= 0 || heightPx <= 0 {
		return fmt.Errorf("invalid image extent %dx%d", widthPx, heightPx)
	}

	index := len(p.doc.media) + 1
	name := fmt.Sprintf("image%d.png", index)
	p.doc.media = append(p.doc.media, mediaAsset{name: name, data: pngData})

	p.runs = append(p.runs, &imageRun{
		relID:   fmt.Sprintf("rId%d", imageRelOffset+index),
		name:    name,
		index:   index,
		widthE:  int64(widthPx) * emuPerPixel,
		heightE: int64(heightPx) * emuPerPixel,
	})
	return nil
}

// HasImages reports whether any paragraph embeds an image
func (d *Document) HasImages() bool {
	return len(d.media) > 0
}

// image relationship ids start above the fixed part relationships
const imageRelOffset = 10

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func (r *TextRun) renderXML(sb *strings.Builder) {
	sb.WriteString("<w:r>")
	if r.bold || r.italic || r.size > 0 {
		sb.WriteString("<w:rPr>")
		if r.bold {
			sb.WriteString("<w:b/>")
		}
		if r.italic {
			sb.WriteString("<w:i/>")
		}
		if r.size > 0 {
			sb.WriteString(`<w:sz w:val="` + strconv.Itoa(r.size) + `"/>`)
		}
		sb.WriteString("</w:rPr>")
	}
	sb.WriteString(`<w:t xml:space="preserve">`)
	sb.WriteString(escape(r.text))
	sb.WriteString("</w:t></w:r>")
}

func (r *imageRun) renderXML(sb *strings.Builder) {
	cx := strconv.FormatInt(r.widthE, 10)
	cy := strconv.FormatInt(r.heightE, 10)
	id := strconv.Itoa(r.index)

	sb.WriteString("<w:r><w:drawing>")
	sb.WriteString(`<wp:inline distT="0" distB="0" distL="0" distR="0">`)
	sb.WriteString(`<wp:extent cx="` + cx + `" cy="` + cy + `"/>`)
	sb.WriteString(`<wp:docPr id="` + id + `" name="` + escape(r.name) + `"/>`)
	sb.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	sb.WriteString(`<pic:pic>`)
	sb.WriteString(`<pic:nvPicPr><pic:cNvPr id="` + id + `" name="` + escape(r.name) + `"/><pic:cNvPicPr/></pic:nvPicPr>`)
	sb.WriteString(`<pic:blipFill><a:blip r:embed="` + r.relID + `"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	sb.WriteString(`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="` + cx + `" cy="` + cy + `"/></a:xfrm>`)
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	sb.WriteString(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`)
}

func (p *Paragraph) renderXML(sb *strings.Builder) {
	sb.WriteString("<w:p>")
	if p.alignment != "" || p.spacing > 0 {
		sb.WriteString("<w:pPr>")
		if p.alignment != "" {
			sb.WriteString(`<w:jc w:val="` + p.alignment + `"/>`)
		}
		if p.spacing > 0 {
			sb.WriteString(`<w:spacing w:after="` + strconv.Itoa(p.spacing) + `"/>`)
		}
		sb.WriteString("</w:pPr>")
	}
	for _, r := range p.runs {
		r.renderXML(sb)
	}
	sb.WriteString("</w:p>")
}

// documentXML renders word/document.xml
func (d *Document) documentXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document` +
		` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	sb.WriteString("<w:body>")
	for _, p := range d.paragraphs {
		p.renderXML(&sb)
	}
	sb.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1417" w:right="1417" w:bottom="1417" w:left="1417"/></w:sectPr>`)
	sb.WriteString("</w:body></w:document>")
	return sb.String()
}

func (d *Document) contentTypesXML() string {
	return xml.Header +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`
}

func (d *Document) rootRelsXML() string {
	return xml.Header +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`
}

func (d *Document) documentRelsXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, m := range d.media {
		sb.WriteString(fmt.Sprintf(
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			imageRelOffset+i+1, m.name))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// Bytes serializes the document as a .docx package
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(d.contentTypesXML())},
		{"_rels/.rels", []byte(d.rootRelsXML())},
		{"word/document.xml", []byte(d.documentXML())},
		{"word/_rels/document.xml.rels", []byte(d.documentRelsXML())},
	}
	for _, m := range d.media {
		parts = append(parts, struct {
			name    string
			content []byte
		}{"word/media/" + m.name, m.data})
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create package part %s: %w", part.name, err)
		}
		if _, err := w.Write(part.content); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write package part %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}
