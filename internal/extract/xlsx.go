package extract

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

// missingCell marks cells absent from short rows.
const missingCell = "NaN"

// readXLSX renders the first worksheet as a right-aligned table. The first
// row is the header; data rows are prefixed with their zero-based index.
func readXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	var buf strings.Builder
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)

	writeRow := func(index string, cells []string) {
		var line strings.Builder
		line.WriteString(index)
		line.WriteByte('\t')
		for i := 0; i < width; i++ {
			cell := missingCell
			if i < len(cells) && cells[i] != "" {
				cell = cells[i]
			}
			line.WriteString(cell)
			line.WriteByte('\t')
		}
		line.WriteByte('\n')
		fmt.Fprint(tw, line.String())
	}

	header := make([]string, width)
	for i := range header {
		if i < len(rows[0]) && rows[0][i] != "" {
			header[i] = rows[0][i]
		} else {
			header[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}
	writeRow("", header)
	for i, row := range rows[1:] {
		writeRow(strconv.Itoa(i), row)
	}

	if err := tw.Flush(); err != nil {
		return "", fmt.Errorf("failed to render sheet: %w", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n"), nil
}
