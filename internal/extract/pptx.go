package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

type presentationXML struct {
	SlideIDs []struct {
		Attrs []xml.Attr `xml:",any,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// readPPTX walks slides in presentation order. Every shape on a slide
// contributes its text followed by a newline.
func readPPTX(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}

	slides, err := slideOrder(zr)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, name := range slides {
		body, err := readZipFile(zr, name)
		if err != nil {
			return out.String(), err
		}
		if err := readSlide(body, &out); err != nil {
			return out.String(), fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	return out.String(), nil
}

// slideOrder resolves sldIdLst through the presentation relationships. When
// the presentation part is missing slides are taken by their file number.
func slideOrder(zr *zip.Reader) ([]string, error) {
	presData, err := readZipFile(zr, "ppt/presentation.xml")
	if err != nil {
		return slidesByNumber(zr), nil
	}
	relsData, err := readZipFile(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	var pres presentationXML
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, fmt.Errorf("failed to parse presentation: %w", err)
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(relsData, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse presentation relationships: %w", err)
	}

	targets := make(map[string]string, len(rels.Items))
	for _, rel := range rels.Items {
		targets[rel.ID] = rel.Target
	}

	slides := make([]string, 0, len(pres.SlideIDs))
	for _, sld := range pres.SlideIDs {
		var relID string
		for _, attr := range sld.Attrs {
			// r:id carries a namespace, the numeric id does not
			if attr.Name.Local == "id" && attr.Name.Space != "" {
				relID = attr.Value
			}
		}
		target, ok := targets[relID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", relID)
		}
		if strings.HasPrefix(target, "/") {
			slides = append(slides, strings.TrimPrefix(target, "/"))
		} else {
			slides = append(slides, path.Join("ppt", target))
		}
	}

	return slides, nil
}

func slidesByNumber(zr *zip.Reader) []string {
	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for _, f := range zr.File {
		rest, ok := strings.CutPrefix(f.Name, "ppt/slides/slide")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(rest, ".xml"))
		if err != nil {
			continue
		}
		found = append(found, numbered{name: f.Name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names
}

func readSlide(body []byte, out *strings.Builder) error {
	var (
		stack   elementStack
		shape   strings.Builder
		inShape bool
		inText  bool
		paras   int
	)

	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack.parent()
			stack.push(t.Name.Local)

			switch t.Name.Local {
			case "sp":
				if parent == "spTree" {
					inShape = true
					shape.Reset()
					paras = 0
				}
			case "p":
				if inShape && parent == "txBody" {
					if paras > 0 {
						shape.WriteByte('\n')
					}
					paras++
				}
			case "t":
				inText = inShape && stack.within("txBody")
			case "br":
				if inShape && parent == "p" {
					shape.WriteByte('\n')
				}
			}

		case xml.EndElement:
			stack.pop()

			switch t.Name.Local {
			case "t":
				inText = false
			case "sp":
				if inShape && stack.parent() == "spTree" {
					out.WriteString(shape.String())
					out.WriteByte('\n')
					inShape = false
				}
			}

		case xml.CharData:
			if inText {
				shape.Write(t)
			}
		}
	}
}
