package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readDOCX returns the text of every top-level body paragraph, each followed
// by a newline. Runs are concatenated; tabs and breaks inside runs are kept.
func readDOCX(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}
	doc, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return "", err
	}

	var (
		out    strings.Builder
		para   strings.Builder
		stack  elementStack
		inPara bool
		inText bool
	)

	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out.String(), fmt.Errorf("failed to parse document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack.parent()
			stack.push(t.Name.Local)

			switch t.Name.Local {
			case "p":
				if parent == "body" {
					inPara = true
					para.Reset()
				}
			case "t":
				inText = inPara && parent == "r"
			case "tab":
				if inPara && parent == "r" {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if inPara && parent == "r" {
					para.WriteByte('\n')
				}
			}

		case xml.EndElement:
			stack.pop()

			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara && stack.parent() == "body" {
					out.WriteString(para.String())
					out.WriteByte('\n')
					inPara = false
				}
			}

		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	return out.String(), nil
}
