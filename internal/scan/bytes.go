package scan

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count for the scan report. Whole bytes are
// shown unscaled ("1023 B"); larger values step through binary units with
// two fractional digits ("1.00 KB").
func FormatBytes(n int64) string {
	v := float64(n)
	for i, u := range byteUnits {
		if v < 1024.0 || i == len(byteUnits)-1 {
			if u == "B" {
				return fmt.Sprintf("%d B", int64(v))
			}
			return fmt.Sprintf("%.2f %s", v, u)
		}
		v /= 1024.0
	}
	return fmt.Sprintf("%d B", n)
}
