package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// SemesterPlan is the structured plan the model returns for the planning
// detail view.
type SemesterPlan struct {
	Semester  string           `json:"semester"`
	TotalECTS float64          `json:"total_ects"`
	UniDays   []string         `json:"uni_days"`
	Courses   []PlannedCourse  `json:"lvas"`
	Summary   string           `json:"summary"`
	Warnings  string           `json:"warnings"`
}

type PlannedCourse struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	ECTS       float64 `json:"ects"`
	Day        string  `json:"day"`
	Time       string  `json:"time"`
	Instructor string  `json:"instructor"`
	Reason     string  `json:"reason"`
}

// PlanRequest bundles everything the model needs to synthesize a plan.
type PlanRequest struct {
	UserQuery      string
	Candidates     []models.Course
	ECTSTarget     int
	PreferredDays  []string
	CompletedNames []string
	DesiredNames   []string
	Excluded       []ExcludedCourse
	IdealPlan      []models.IdealPlanEntry
}

const systemInstruction = `Du bist UNI, ein Studienplanungs-Assistent für Bachelor Wirtschaftsinformatik an der JKU. Du erstellst realistische Semesterpläne aus den bereitgestellten LVA-Daten und beantwortest Fragen zum Studium ausschließlich auf Basis dieser Daten.`

// LLMService wraps the GigaChat client used to synthesize semester plans
// and chat answers from filtered candidates.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.3

	return &LLMService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

// GenerateSemesterPlan asks the model for a structured plan. The returned
// planning context is the prompt-sized description of the request; it is
// persisted alongside the plan so chat answers can reuse it.
func (s *LLMService) GenerateSemesterPlan(ctx context.Context, req PlanRequest) (*SemesterPlan, string, error) {
	planningContext := s.buildPlanningContext(req)
	prompt := planningContext + planJSONFormat(req.UserQuery)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, planningContext, err
	}

	var plan SemesterPlan
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &plan); err != nil {
		s.logger.Error("failed to parse plan response",
			zap.Error(err),
			zap.String("response", truncate(raw, 500)),
		)
		return nil, planningContext, fmt.Errorf("failed to parse plan response: %w", err)
	}

	return &plan, planningContext, nil
}

// CreateChatAnswer answers a follow-up question about an existing plan using
// the stored planning context.
func (s *LLMService) CreateChatAnswer(ctx context.Context, userQuery, planningContext string) (string, error) {
	prompt := fmt.Sprintf(`%s

**AKTUELLE USER-ANFRAGE (zu beantworten):**
%s

**OUTPUT-FORMAT:**
Beantworte die Frage des Users in natürlicher Sprache.
Antworte ausschließlich aufgrund der Informationen, die dir zur Verfügung stehen. Bei Fragen zum Studium Bachelor Wirtschaftsinformatik, die du nicht beantworten kannst, verweise auf das Studienhandbuch der JKU unter https://studienhandbuch.jku.at/curr/1193 und für allgemeine Fragen auf https://www.jku.at/
Formuliere deine Antwort kurz und freundlich.
`, planningContext, userQuery)

	return s.generate(ctx, prompt)
}

// AnswerStudyQuestion answers a free-form question grounded in the given
// catalog excerpts.
func (s *LLMService) AnswerStudyQuestion(ctx context.Context, question string, contextCourses []models.Course) (string, error) {
	prompt := fmt.Sprintf(`**FRAGE:**
%s

**KONTEXT (Relevante LVA-Daten):**
%s

**WICHTIG:**
- Antworte AUSSCHLIESSLICH basierend auf den bereitgestellten Daten
- Wenn die Info nicht verfügbar ist, sage das klar
- Sei präzise und hilfsbereit

**ANTWORT:**
`, question, formatCoursesForPrompt(contextCourses))

	return s.generate(ctx, prompt)
}

func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) buildPlanningContext(req PlanRequest) string {
	var excludedNames strings.Builder
	for _, ex := range req.Excluded {
		fmt.Fprintf(&excludedNames, "- %s\n", ex.Course.Metadata.Name)
	}

	return fmt.Sprintf(`**USER-ANFRAGE:**
%s

**ZIEL-PARAMETER:**
- maximales ECTS-Ziel: %d ECTS
- Bevorzugte Tage: %s
- Bereits absolvierte LVAs: %s
- Gewünschte LVAs: %s

**VERFÜGBARE LVAs:**
%s

**Blacklist: diese LVAs dürfen NICHT im Plan aufscheinen:**
%s

**DEINE AUFGABEN:**
1. **Wähle die optimalen LVAs** aus der Liste VERFÜGBARE LVAs, die:
   - Das ECTS-Ziel erreichen, eine Unterschreitung ist möglich, eine Überschreitung KEINESFALLS
   - An den bevorzugten Tagen stattfinden
   - plane den Typ "VL" und "UE" einer LVA immer im selben Semester
   - Bereits absolvierte Kurse dürfen keinesfalls im Plan vorkommen
   - jede LVA darf im Plan nur einmal vorkommen, LVA+Type ist die LVA id
   - priorisiere gewünschte LVAs

2. **Prüfe Voraussetzungen GRÜNDLICH**:
   - Nutze die detaillierten Informationen aus dem Studienhandbuch für jede LVA
   - Prüfe "Anmeldevoraussetzungen" UND "Erwartete Vorkenntnisse"
   - Falls Voraussetzungen NICHT erfüllt: NICHT vorschlagen

3. **Prüfe Zeitkonflikte**:
   - Keine zwei LVAs dürfen zur selben Zeit stattfinden

4. **Priorität der Kurse im Plan**:
   - falls die Kurse der STEOP (Studien Eingangs Orientierungs Phase) noch nicht absolviert wurden, müssen diese geplant werden: Einführung in die Softwareentwicklung UE, Einführung in die Softwareentwicklung VL, Grundlagen der BWL, Einführung in die Wirtschaftsinformatik
   - priorisiere Kurse, die im idealtypischen Studienplan in niedrigeren Semestern vorkommen

%s
`,
		req.UserQuery,
		req.ECTSTarget,
		joinOrDefault(req.PreferredDays, "Keine Angabe"),
		joinOrDefault(req.CompletedNames, "Keine"),
		joinOrDefault(req.DesiredNames, "Keine spezifischen Wünsche"),
		formatCoursesForPrompt(req.Candidates),
		excludedNames.String(),
		FormatIdealPlan(req.IdealPlan),
	)
}

func planJSONFormat(userQuery string) string {
	semester := "SS26"
	for _, word := range strings.Fields(userQuery) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if strings.HasPrefix(word, "SS") || strings.HasPrefix(word, "WS") {
			semester = word
			break
		}
	}

	return fmt.Sprintf(`
**OUTPUT-FORMAT:**
Antworte AUSSCHLIESSLICH mit einem gültigen JSON-Objekt in folgendem Format (KEIN anderer Text):

{
  "semester": "%s",
  "total_ects": 0,
  "uni_days": [],
  "lvas": [
    {
      "name": "Voller LVA-Name",
      "type": "VL|UE|PR|SE|KS|KV|PS|PE|PJ|KT",
      "ects": 0,
      "day": "Mo./Di./Mi./Do./Fr.",
      "time": "HH:MM - HH:MM",
      "instructor": "Name des Leiters",
      "reason": "Kurze Begründung"
    }
  ],
  "summary": "Zusammenfassung der Planungsentscheidungen",
  "warnings": "Hinweise oder leerer String"
}

WICHTIG:
- Antworte NUR mit dem JSON-Objekt
- Kein Text vor oder nach dem JSON
- Alle String-Werte in Anführungszeichen
- Zahlen ohne Anführungszeichen
`, semester)
}

// formatCoursesForPrompt renders retrieved courses as prompt sections,
// keeping the full chunk content so the model can check prerequisites
// mentioned only in prose.
func formatCoursesForPrompt(courses []models.Course) string {
	if len(courses) == 0 {
		return "Keine LVAs verfügbar."
	}

	var b strings.Builder
	for i, c := range courses {
		if i > 0 {
			b.WriteString("\n\n")
		}

		m := c.Metadata
		prereq := m.Prerequisites
		if prereq == "" {
			prereq = "Keine"
		}
		content := c.Content
		if content == "" {
			content = "Keine weiteren Details verfügbar."
		}

		fmt.Fprintf(&b, `================================================================
LVA %s: %s (%s)
================================================================
  - ECTS: %.1f
  - Semester: %s
  - Wochentag: %s um %s
  - LVA-Leiter: %s
  - Voraussetzungen: %s

  DETAILLIERTE INFORMATIONEN AUS STUDIENHANDBUCH:
  %s`,
			m.Number, m.Name, m.Type, m.ECTS, m.Semester, m.Day, m.Time, m.Instructor, prereq, content)
	}

	return b.String()
}

// FormatIdealPlan renders the model curriculum grouped by semester for the
// planning prompt.
func FormatIdealPlan(plan []models.IdealPlanEntry) string {
	if len(plan) == 0 {
		return "Kein idealtypischer Studienplan verfügbar."
	}

	bySemester := make(map[int][]models.IdealPlanEntry)
	for _, entry := range plan {
		bySemester[entry.SemesterNum] = append(bySemester[entry.SemesterNum], entry)
	}

	semesters := make([]int, 0, len(bySemester))
	for sem := range bySemester {
		semesters = append(semesters, sem)
	}
	sort.Ints(semesters)

	var b strings.Builder
	b.WriteString("=== IDEALTYPISCHER STUDIENVERLAUF ===\n\n")
	for _, sem := range semesters {
		fmt.Fprintf(&b, "**Semester %d:**\n", sem)
		for _, entry := range bySemester[sem] {
			fmt.Fprintf(&b, "- %s (%.1f ECTS, %s)\n", entry.CourseName, entry.ECTS, entry.SemesterType)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func joinOrDefault(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
