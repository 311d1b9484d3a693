// Package version provides build-time version information for annofetch.
//
// The variables are set with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/annofetch/version.Version=1.2.3 \
//	  -X github.com/ncobase/annofetch/version.Branch=main \
//	  -X github.com/ncobase/annofetch/version.Revision=abc1234 \
//	  -X 'github.com/ncobase/annofetch/version.BuiltAt=$(date)'" \
//	  ./cmd/annofetch
//
// Values left unset fall back to the VCS stamp the Go toolchain embeds in
// the binary, so `go install` builds still report a revision.
//
//	info := version.GetVersionInfo()
//	fmt.Println(info)        // human-readable, one field per line
//	s, _ := info.JSON()      // indented JSON
//	version.UserAgent()      // "annofetch/1.2.3"
package version
