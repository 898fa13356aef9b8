package model

// FFProbeFormat mirrors the "format" object of ffprobe's JSON output.
type FFProbeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}
