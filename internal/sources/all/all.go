// Package all registers every supported prediction source via init().
package all

import (
	_ "github.com/hoopcast/hoopcast/internal/sources/haslametrics"
	_ "github.com/hoopcast/hoopcast/internal/sources/kenpom"
	_ "github.com/hoopcast/hoopcast/internal/sources/torvik"
)
