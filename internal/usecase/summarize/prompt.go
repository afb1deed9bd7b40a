package summarize

import "fmt"

// SystemInstruction is sent as the system message of every completion request.
const SystemInstruction = "You are a helpful academic tutor."

const promptTemplate = `
You are a helpful academic tutor.

A student has uploaded a research paper and is feeling overwhelmed. Your job is to:

1. Summarize the following excerpt in plain English using bullet points.
2. Suggest one realistic, beginner-friendly project idea based on the research.

Text:
%s
`

// BuildPrompt embeds a chunk into the user prompt.
func BuildPrompt(chunk string) string {
	return fmt.Sprintf(promptTemplate, chunk)
}
