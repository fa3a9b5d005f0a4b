// Package multipart decodes raw multipart/form-data bodies without going
// through net/http's request machinery. Decoding operates on the exact
// byte pattern of the boundary, never on partially decoded text, so file
// content may contain arbitrary bytes including CRLF sequences.
package multipart

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
)

const defaultContentType = "application/octet-stream"

var (
	// ErrMalformedBody means the boundary never appeared in a non-empty body.
	ErrMalformedBody = errors.New("multipart: no boundary-delimited parts found")
	// ErrMissingDisposition means a delimited part carried headers but no
	// Content-Disposition, so it cannot be named or classified.
	ErrMissingDisposition = errors.New("multipart: part has no Content-Disposition header")
)

// Part is one file unit of a decoded body. Content holds the raw bytes
// exactly as they appeared on the wire between header block and boundary.
type Part struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// Body is the result of decoding one request body. Fields holds plain
// form values as text; Files holds every part that carried a filename
// attribute, in wire order. A Body is only valid for the request that
// produced it.
type Body struct {
	Fields map[string]string
	Files  []Part
}

var (
	nameAttr     = regexp.MustCompile(`(?:^|;)\s*name="([^"]*)"`)
	filenameAttr = regexp.MustCompile(`(?:^|;)\s*filename="([^"]*)"`)
)

var (
	crlf      = []byte("\r\n")
	headerEnd = []byte("\r\n\r\n")
)

// Decode splits raw on the literal delimiter "--"+boundary and returns the
// typed parts. An empty body decodes to an empty Body. Decoding is pure:
// identical input always yields a structurally equal result, and the
// returned Body does not alias raw.
//
// Per-part problems are tolerated where possible: chunks without a header
// block and parts without a name attribute are dropped, not errors. Only
// whole-body malformation (ErrMalformedBody) and a part whose header block
// lacks a disposition (ErrMissingDisposition) fail the decode.
func Decode(raw []byte, boundary string) (*Body, error) {
	body := &Body{Fields: make(map[string]string)}
	if len(raw) == 0 {
		return body, nil
	}

	delim := []byte("--" + boundary)
	if !bytes.Contains(raw, delim) {
		return nil, ErrMalformedBody
	}

	chunks := bytes.Split(raw, delim)
	// chunks[0] is the preamble before the first boundary; the final chunk
	// after the closing "--boundary--" is just the "--" tail. Neither is a part.
	for _, chunk := range chunks[1:] {
		if isTerminator(chunk) {
			continue
		}
		part, isFile, err := decodePart(chunk)
		if err != nil {
			return nil, err
		}
		if part == nil {
			continue
		}
		if isFile {
			body.Files = append(body.Files, *part)
		} else {
			body.Fields[part.FieldName] = string(part.Content)
		}
	}
	return body, nil
}

// isTerminator reports whether chunk is the closing "--" tail (or nothing
// but line noise between two adjacent boundaries).
func isTerminator(chunk []byte) bool {
	trimmed := bytes.TrimRight(chunk, "\r\n \t")
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("--"))
}

// decodePart decodes one boundary-delimited chunk. It returns (nil, false,
// nil) for chunks that should be silently dropped.
func decodePart(chunk []byte) (part *Part, isFile bool, err error) {
	chunk = bytes.TrimPrefix(chunk, crlf)

	sep := bytes.Index(chunk, headerEnd)
	if sep < 0 {
		// Stray bytes between boundaries with no header block at all.
		return nil, false, nil
	}

	var disposition, contentType string
	for _, line := range strings.Split(string(chunk[:sep]), "\r\n") {
		header, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "content-disposition":
			disposition = strings.TrimSpace(value)
		case "content-type":
			contentType = strings.TrimSpace(value)
		}
	}
	if disposition == "" {
		return nil, false, ErrMissingDisposition
	}

	nameMatch := nameAttr.FindStringSubmatch(disposition)
	if nameMatch == nil || nameMatch[1] == "" {
		// A part we cannot address by name is useless downstream.
		return nil, false, nil
	}

	content := chunk[sep+len(headerEnd):]
	// The CRLF before the next boundary belongs to the framing, not the content.
	content = bytes.TrimSuffix(content, crlf)

	part = &Part{
		FieldName: nameMatch[1],
		Content:   append([]byte(nil), content...),
	}

	if m := filenameAttr.FindStringSubmatch(disposition); m != nil {
		part.FileName = m[1]
		part.ContentType = contentType
		if part.ContentType == "" {
			part.ContentType = defaultContentType
		}
		return part, true, nil
	}
	return part, false, nil
}
