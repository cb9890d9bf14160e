package partition

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// partitionXLSX returns one element per sheet. Rows become lines and cells
// are tab-separated.
func partitionXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var elements []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}

		var sb strings.Builder
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		elements = appendNonEmpty(elements, sb.String())
	}
	return elements, nil
}
