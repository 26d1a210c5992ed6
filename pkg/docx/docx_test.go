package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
)

// testPNG returns a minimal valid PNG payload
func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// readPart extracts one file from the serialized package
func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open part %s: %v", name, err)
		}
		defer rc.Close()
		var sb strings.Builder
		if _, err := io.Copy(&sb, rc); err != nil {
			t.Fatalf("failed to read part %s: %v", name, err)
		}
		return sb.String()
	}
	t.Fatalf("part %s not found in package", name)
	return ""
}

func TestBytesContainsRequiredParts(t *testing.T) {
	doc := New()
	doc.AddParagraph().AddText("Bonjour")

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}

	for _, part := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
	} {
		readPart(t, data, part)
	}
}

func TestTextRunStyling(t *testing.T) {
	doc := New()
	p := doc.AddParagraph().Align(AlignCenter)
	p.AddText("Résiliation").Bold().Size(14)
	p.AddText(" confirmée").Italic()

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}
	body := readPart(t, data, "word/document.xml")

	for _, want := range []string{
		`<w:jc w:val="center"/>`,
		"<w:b/>",
		"<w:i/>",
		`<w:sz w:val="28"/>`, // 14pt in half-points
		"Résiliation",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestTextEscaping(t *testing.T) {
	doc := New()
	doc.AddParagraph().AddText(`Müller & Fils <SA> "Lausanne"`)

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}
	body := readPart(t, data, "word/document.xml")

	if !strings.Contains(body, "Müller &amp; Fils &lt;SA&gt;") {
		t.Errorf("expected escaped text in document.xml, got: %s", body)
	}
	if strings.Contains(body, "<SA>") {
		t.Errorf("raw angle brackets leaked into document.xml")
	}
}

func TestAddImageEmbedsMediaAndRelationship(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	if err := p.AddImage(testPNG(t), 200, 100); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	if !doc.HasImages() {
		t.Errorf("HasImages() = false after AddImage")
	}

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}

	body := readPart(t, data, "word/document.xml")
	// 200x100 px at 9525 EMU/px
	if !strings.Contains(body, `cx="1905000" cy="952500"`) {
		t.Errorf("expected 200x100 extent in EMU, got: %s", body)
	}
	if !strings.Contains(body, `r:embed="rId11"`) {
		t.Errorf("expected image relationship reference in document.xml")
	}

	rels := readPart(t, data, "word/_rels/document.xml.rels")
	if !strings.Contains(rels, `Target="media/image1.png"`) {
		t.Errorf("expected image relationship target, got: %s", rels)
	}
	readPart(t, data, "word/media/image1.png")
}

func TestAddImageRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a png", []byte("definitely not a png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New()
			p := doc.AddParagraph()
			if err := p.AddImage(tt.data, 200, 100); err == nil {
				t.Errorf("AddImage(%s) succeeded, expected error", tt.name)
			}
			if doc.HasImages() {
				t.Errorf("media registered for invalid image data")
			}
		})
	}
}

func TestAddImageRejectsInvalidExtent(t *testing.T) {
	doc := New()
	if err := doc.AddParagraph().AddImage(testPNG(t), 0, 100); err == nil {
		t.Errorf("AddImage with zero width succeeded, expected error")
	}
}
