package model

// UploadedItem is one file received from the upload surface. It only lives
// long enough to be written to scratch storage.
type UploadedItem struct {
	Filename string
	Data     []byte
}

// TranscriptRecord is the outcome of processing one uploaded item. Exactly
// one of Text or Err is meaningful: a failed item carries its error and an
// empty transcript, a successful one the reverse.
type TranscriptRecord struct {
	Key         string
	DisplayName string
	Text        string
	Err         error
}

// Failed reports whether the item ended in a failure state.
func (r TranscriptRecord) Failed() bool {
	return r.Err != nil
}

// DisplayText returns the text shown in place of the transcript. Failures
// are formatted here, at the presentation boundary, so callers never branch
// on item state.
func (r TranscriptRecord) DisplayText() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Text
}
