package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// DocxParagraph is one w:p element read back from word/document.xml.
type DocxParagraph struct {
	Style string
	Text  string
}

// ReadDocxParagraphs unzips a .docx and returns its body paragraphs in order.
func ReadDocxParagraphs(data []byte) ([]DocxParagraph, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	if docXML == nil {
		return nil, errors.New("no word/document.xml in docx")
	}

	var (
		paragraphs []DocxParagraph
		current    *DocxParagraph
		text       strings.Builder
		inText     bool
	)

	dec := xml.NewDecoder(bytes.NewReader(docXML))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				current = &DocxParagraph{}
				text.Reset()
			case "pStyle":
				if current != nil {
					for _, attr := range el.Attr {
						if attr.Name.Local == "val" {
							current.Style = attr.Value
						}
					}
				}
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if current != nil {
					current.Text = text.String()
					paragraphs = append(paragraphs, *current)
					current = nil
				}
			}
		}
	}

	return paragraphs, nil
}

// ZipEntryNames lists the file names inside a zip archive.
func ZipEntryNames(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}
