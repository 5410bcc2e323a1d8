package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
)

// contentGenerator is the completion API seam; tests substitute a stub.
type contentGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type EvaluatorService interface {
	ProcessDocument(ctx context.Context, screeningID, documentID uuid.UUID) error
}

type evaluatorService struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	extractor     ExtractorService
	generator     contentGenerator
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewEvaluatorService(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	extractor ExtractorService,
	generator contentGenerator,
	logger *zap.Logger,
) EvaluatorService {
	return &evaluatorService{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		extractor:     extractor,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

// ProcessDocument runs one uploaded resume through extraction, evaluation
// and parsing. Pipeline failures mark the item failed and return nil so the
// rest of the batch is unaffected; only bookkeeping failures propagate.
func (e *evaluatorService) ProcessDocument(ctx context.Context, screeningID, documentID uuid.UUID) error {
	if err := e.screeningRepo.UpdateItemStatus(screeningID, documentID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}

	screening, err := e.screeningRepo.FindByID(screeningID)
	if err != nil {
		return fmt.Errorf("failed to get screening: %w", err)
	}

	doc, err := e.docRepo.FindByID(documentID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	resumeText, err := e.extractor.ExtractFile(doc.FilePath, doc.OriginalFileName)
	if err != nil {
		return e.failItem(screeningID, documentID, doc.OriginalFileName, err)
	}

	if resumeText == "" {
		e.logger.Warn("no extractable text, evaluating empty resume",
			zap.String("filename", doc.OriginalFileName))
	}

	prompt := e.promptBuilder.BuildScreeningPrompt(resumeText, screening.Requirement)

	response, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		return e.failItem(screeningID, documentID, doc.OriginalFileName,
			fmt.Errorf("%w: %v", ErrCompletionAPI, err))
	}

	result, err := ParseAnalysis(response)
	if err != nil {
		return e.failItem(screeningID, documentID, doc.OriginalFileName, err)
	}

	if err := e.screeningRepo.UpdateItemResult(screeningID, documentID, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	e.logger.Info("document evaluated",
		zap.String("filename", doc.OriginalFileName),
		zap.Int("score", result.Score),
		zap.String("verdict", string(result.Verdict)),
	)
	return nil
}

func (e *evaluatorService) failItem(screeningID, documentID uuid.UUID, filename string, cause error) error {
	e.logger.Warn("document evaluation failed",
		zap.String("filename", filename),
		zap.String("kind", ErrorKind(cause)),
		zap.Error(cause),
	)
	if err := e.screeningRepo.UpdateItemError(screeningID, documentID, ErrorKind(cause), cause.Error()); err != nil {
		return fmt.Errorf("failed to record item error: %w", err)
	}
	return nil
}

// Field labels the completion must produce, in prompt order.
const (
	labelName          = "Candidate Name"
	labelScore         = "Match Score"
	labelSkillsFound   = "Key Skills Found"
	labelSkillsMissing = "Missing Skills"
	labelVerdict       = "Verdict"
	labelRationale     = "Rationale"
)

// ParseAnalysis turns the raw completion text into a MatchResult. It fails
// closed: a missing required field, an out-of-format score or verdict, or
// any unrecognized line yields ErrUnparsable instead of a fabricated
// result.
func ParseAnalysis(response string) (*models.MatchResult, error) {
	fields := map[string]string{}

	for _, line := range strings.Split(stripCodeFence(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, value, ok := splitLabeledLine(line)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected line %q", ErrUnparsable, line)
		}
		fields[label] = value
	}

	name := fields[labelName]
	if name == "" {
		return nil, fmt.Errorf("%w: missing candidate name", ErrUnparsable)
	}

	scoreValue, ok := fields[labelScore]
	if !ok {
		return nil, fmt.Errorf("%w: missing match score", ErrUnparsable)
	}
	score, err := parseScore(scoreValue)
	if err != nil {
		return nil, err
	}

	verdict, err := parseVerdict(fields[labelVerdict])
	if err != nil {
		return nil, err
	}

	rationale := fields[labelRationale]
	if rationale == "" {
		return nil, fmt.Errorf("%w: missing rationale", ErrUnparsable)
	}

	return &models.MatchResult{
		CandidateName: name,
		Score:         score,
		Verdict:       verdict,
		Rationale:     rationale,
		SkillsFound:   fields[labelSkillsFound],
		SkillsMissing: fields[labelSkillsMissing],
	}, nil
}

// splitLabeledLine matches a "N. Label: value" line, with the numeric
// prefix optional.
func splitLabeledLine(line string) (label, value string, ok bool) {
	trimmed := strings.TrimLeft(line, "0123456789")
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "."))

	for _, known := range []string{
		labelName, labelScore, labelSkillsFound,
		labelSkillsMissing, labelVerdict, labelRationale,
	} {
		if rest, found := strings.CutPrefix(trimmed, known); found {
			rest = strings.TrimSpace(rest)
			if rest, found = strings.CutPrefix(rest, ":"); found {
				return known, strings.TrimSpace(rest), true
			}
		}
	}
	return "", "", false
}

// parseScore reads the leading integer of the score value (tolerating forms
// like "85/100") and clamps it to [0,100].
func parseScore(value string) (int, error) {
	value = strings.TrimSpace(value)

	digits := 0
	score := 0
	for _, r := range value {
		if !unicode.IsDigit(r) {
			break
		}
		score = score*10 + int(r-'0')
		digits++
		if score > 1000 {
			break
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: invalid match score %q", ErrUnparsable, value)
	}

	if score > 100 {
		score = 100
	}
	return score, nil
}

func parseVerdict(value string) (models.Verdict, error) {
	switch {
	case strings.HasPrefix(value, "Strong"):
		return models.VerdictStrong, nil
	case strings.HasPrefix(value, "Moderate"):
		return models.VerdictModerate, nil
	case strings.HasPrefix(value, "Weak"):
		return models.VerdictWeak, nil
	default:
		return "", fmt.Errorf("%w: invalid verdict %q", ErrUnparsable, value)
	}
}

// stripCodeFence removes a surrounding markdown code block if the model
// wrapped its answer in one.
func stripCodeFence(text string) string {
	clean := strings.TrimSpace(text)

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```text")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	}

	return strings.TrimSpace(clean)
}
