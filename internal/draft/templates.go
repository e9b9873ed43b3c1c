package draft

// BoundaryTemplates are the stock boundary phrases offered by the log form.
// The first entry means no template.
var BoundaryTemplates = []string{
	"",
	"That's all I can do today.",
	"I can't take that on.",
	"Let's decide who owns this first.",
	"I'll reply by a set time, not now.",
	"Let's keep this to 15 minutes.",
	"Please ask someone else for this part.",
	"I need to step away for now.",
}
