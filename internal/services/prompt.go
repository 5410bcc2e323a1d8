package services

import (
	"fmt"
	"strings"

	"resume-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt creates the screening instruction for one resume.
// The format is fixed: response parsing depends on these exact labels.
func (pb *PromptBuilder) BuildScreeningPrompt(resumeText string, requirement models.Requirement) string {
	return fmt.Sprintf(`You are an expert AI HR assistant. Analyze the resume against the following criteria.
Return the results strictly in this format:

1. Candidate Name: [Full Name]
2. Match Score: [0-100]
3. Key Skills Found: [comma-separated list]
4. Missing Skills: [comma-separated list]
5. Verdict: Strong Match / Moderate Match / Weak Match
6. Rationale: [1-2 sentences explaining the verdict]

DO NOT include any extra text or explanation. Follow this exact format.

Resume:
%s

Criteria to Match Against:
%s`, resumeText, pb.BuildCriteria(requirement))
}

// BuildCriteria renders the requirement as the criteria block. With no
// criteria at all, the evaluation falls back to a general assessment.
func (pb *PromptBuilder) BuildCriteria(requirement models.Requirement) string {
	var parts []string
	if technical := strings.TrimSpace(requirement.TechnicalSkills); technical != "" {
		parts = append(parts, fmt.Sprintf("Technical Skills: %s", technical))
	}
	if soft := strings.TrimSpace(requirement.SoftSkills); soft != "" {
		parts = append(parts, fmt.Sprintf("Soft Skills: %s", soft))
	}

	if len(parts) == 0 {
		return "General skills and qualifications assessment"
	}

	return strings.Join(parts, "\n")
}
