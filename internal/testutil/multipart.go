package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
)

// FormFile is one file part of a multipart form.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody encodes fields and files as multipart/form-data and returns
// the body with its Content-Type header value.
func MultipartBody(fields map[string]string, files ...FormFile) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			panic(err)
		}
	}

	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			panic(err)
		}
		if _, err := part.Write(f.Content); err != nil {
			panic(err)
		}
	}

	if err := writer.Close(); err != nil {
		panic(err)
	}

	return body, writer.FormDataContentType()
}

// FileHeader parses a single-file multipart body and returns its header,
// for tests that call services taking *multipart.FileHeader directly.
func FileHeader(field, filename string, content []byte) *multipart.FileHeader {
	body, contentType := MultipartBody(nil, FormFile{Field: field, Filename: filename, Content: content})

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		panic(err)
	}

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(int64(len(content)) + 1024)
	if err != nil {
		panic(err)
	}

	return form.File[field][0]
}
