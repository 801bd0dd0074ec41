package cpbridge

// Part is one element of a tool result: either a TextPart or an ImagePart.
// The union is sealed; transports switch on the concrete type.
type Part interface {
	part()
}

// TextPart is a display-ready text fragment.
type TextPart struct {
	Text string
}

// ImagePart is an opaque image payload. The bridge forwards Data unchanged and
// never reinterprets it; MIME declares the encoding (e.g. "image/png").
type ImagePart struct {
	MIME string
	Data []byte
}

func (TextPart) part()  {}
func (ImagePart) part() {}

// Result is the envelope a handler returns: an ordered sequence of parts with
// at least one element.
type Result struct {
	Parts []Part
}

// Text builds a single-part text result.
func Text(s string) *Result {
	return &Result{Parts: []Part{TextPart{Text: s}}}
}

// Mixed builds a result from the given parts in order.
func Mixed(parts ...Part) *Result {
	return &Result{Parts: parts}
}

// AddText appends a text part and returns the result for chaining.
func (r *Result) AddText(s string) *Result {
	r.Parts = append(r.Parts, TextPart{Text: s})
	return r
}

// AddImage appends an image part and returns the result for chaining.
func (r *Result) AddImage(mime string, data []byte) *Result {
	r.Parts = append(r.Parts, ImagePart{MIME: mime, Data: data})
	return r
}

// Empty reports whether the result carries no parts. Dispatch rejects empty
// results with a HandlerError.
func (r *Result) Empty() bool {
	return r == nil || len(r.Parts) == 0
}
