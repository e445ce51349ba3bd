package manifest

import "fmt"

const (
	commentPrefixConstant             = "#"
	rootAnchorPrefixConstant          = "/"
	globMetacharactersConstant        = "*?["
	noOwnerSentinelConstant           = "<no owner specified>"
	notFoundErrorTemplateConstant     = "%s does not exist"
	manifestReadErrorTemplateConstant = "unable to read manifest %s: %w"
)

// NoOwnerSentinel is the display value used when a pattern line carries no owner text.
//
// It is presentation only: StaleEntry.Owner stays empty so the sentinel can
// never be mistaken for a real owner.
const NoOwnerSentinel = noOwnerSentinelConstant

// NotFoundError indicates the manifest file itself does not exist. It is fatal.
type NotFoundError struct {
	Path string
}

// Error describes the missing manifest.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Path)
}

// StaleEntry describes a manifest line whose pattern matches nothing on disk.
type StaleEntry struct {
	// LineNumber is the 1-based position of the entry within the manifest.
	LineNumber int
	// Pattern is the path or glob exactly as written in the manifest.
	Pattern string
	// Owner is the raw owner text following the pattern; empty when absent.
	Owner string
	// Text is the original line with its terminator stripped.
	Text string
}

// DisplayOwner returns the owner text or the no-owner sentinel when empty.
func (entry StaleEntry) DisplayOwner() string {
	if len(entry.Owner) == 0 {
		return NoOwnerSentinel
	}
	return entry.Owner
}
