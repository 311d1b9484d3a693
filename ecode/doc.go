// Package ecode classifies the errors annofetch can fail with and maps them
// to process exit codes.
//
// Every failure is fatal. The kind decides only how it is reported:
//
//	ecode.KindUsage          // 2: missing or malformed command-line arguments
//	ecode.KindTransport      // 3: request failed or the service answered non-2xx
//	ecode.KindResponseFormat // 4: body not JSON, or rows/updated missing
//	ecode.KindGuard          // 5: max-pages or repeated-cursor guard tripped
//
// Anything unclassified exits with 1.
//
// Wrapping keeps the kind visible through fmt.Errorf("...: %w", err):
//
//	err := ecode.Transport("search", netErr)
//	err = fmt.Errorf("fetch page 3: %w", err)
//	ecode.ExitCode(err) // 3
//
// The Field* helpers build short user-facing messages such as "url required".
package ecode
