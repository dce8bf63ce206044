package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCritiquePrompt creates the prompt for the qualitative resume-vs-JD
// analysis. The model is asked for strict JSON so the response can be parsed
// into AnalysisData.
func (pb *PromptBuilder) BuildCritiquePrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`You are an expert ATS and HR resume evaluator.

Compare the RESUME with the JOB DESCRIPTION and analyze strictly.

TASKS:
1. List matched skills (skills present in both JD and resume)
2. List missing skills (skills present in JD but absent in resume)
3. Give improvement suggestions
4. Give a short overall summary with a suitability verdict

RESUME:
%s

JOB DESCRIPTION:
%s

Return your response in the following JSON format:
{
  "matched_skills": "<comma-separated matched skills>",
  "missing_skills": "<comma-separated missing skills>",
  "suggestions": "<2-4 concrete improvement suggestions>",
  "summary": "<3-5 sentence overall assessment>"
}

Be objective and specific. Reference actual content from the resume.`,
		resumeText, jdText)
}

// ExtractJSON pulls the first balanced JSON object or array out of text that
// may wrap it in markdown fences or extra prose. Returns the input unchanged
// when no boundaries are found.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
