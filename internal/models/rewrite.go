package models

type ResultKind string

const (
	KindSuccess         ResultKind = "success"
	KindCredentialError ResultKind = "credential_error"
	KindInputError      ResultKind = "input_error"
	KindExtractionError ResultKind = "extraction_error"
	KindCallError       ResultKind = "call_error"
	KindAssemblyError   ResultKind = "assembly_error"
)

// RewriteResult is the outcome of one CV rewrite action. Document and File
// are set only when Kind is KindSuccess; Message and Err only otherwise.
type RewriteResult struct {
	Kind          ResultKind
	Language      Language
	ExtractedText string
	RewrittenText string
	Document      *CVDocument
	File          []byte
	Message       string
	Err           error
}

func (r *RewriteResult) OK() bool {
	return r.Kind == KindSuccess
}
