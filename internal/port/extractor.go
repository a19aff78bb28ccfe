package port

// Extractor converts uploaded file bytes into plain text, dispatching on the
// filename's extension.
type Extractor interface {
	// Extract returns the plain text of the file, or an error. It never
	// returns partial text alongside an error.
	Extract(data []byte, filename string) (string, error)
}
