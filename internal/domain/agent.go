package domain

// AgentType identifies one of the ten fixed analysis units.
type AgentType string

const (
	AgentDocumentAnalysis   AgentType = "DAU" // Document Analysis Unit
	AgentEvidenceAnalysis   AgentType = "EAU" // Evidence Analysis Unit
	AgentDisputeIdentify    AgentType = "DIU" // Dispute Identify Unit
	AgentLegalResearch      AgentType = "LEU" // Law Explore Unit
	AgentStrategyGeneration AgentType = "SGU" // Strategy Generation Unit
	AgentDocumentDrafting   AgentType = "DGU" // Document Generation Unit
	AgentReportGeneration   AgentType = "RGU" // Report Generation Unit
	AgentAbstractGeneration AgentType = "AGU" // Abstract Generation Unit
	AgentSchedulePlanning   AgentType = "SPU" // Schedule Planning Unit
	AgentQualityReview      AgentType = "IRU" // Intelligent Review Unit
)

func (a AgentType) String() string { return string(a) }

func (a AgentType) IsValid() bool {
	switch a {
	case AgentDocumentAnalysis, AgentEvidenceAnalysis, AgentDisputeIdentify,
		AgentLegalResearch, AgentStrategyGeneration, AgentDocumentDrafting,
		AgentReportGeneration, AgentAbstractGeneration, AgentSchedulePlanning,
		AgentQualityReview:
		return true
	}
	return false
}

// AllAgents lists every agent in registry order.
func AllAgents() []AgentType {
	return []AgentType{
		AgentDocumentAnalysis,
		AgentEvidenceAnalysis,
		AgentDisputeIdentify,
		AgentLegalResearch,
		AgentStrategyGeneration,
		AgentDocumentDrafting,
		AgentReportGeneration,
		AgentAbstractGeneration,
		AgentSchedulePlanning,
		AgentQualityReview,
	}
}

// agentDescriptions gives the one-line responsibility of each unit,
// used in activity messages and the status surface.
var agentDescriptions = map[AgentType]string{
	AgentDocumentAnalysis:   "Parses legal documents, extracts entities, and digitizes structure.",
	AgentEvidenceAnalysis:   "Analyzes evidence depth, authenticity, and chain of custody.",
	AgentDisputeIdentify:    "Identifies core disputes and legal conflicts within the dataset.",
	AgentLegalResearch:      "Conducts legal research, finding relevant case law and statutes.",
	AgentStrategyGeneration: "Generates litigation strategies with risk assessment.",
	AgentDocumentDrafting:   "Drafts legal documents (complaints, answers, motions).",
	AgentReportGeneration:   "Compiles comprehensive case reports.",
	AgentAbstractGeneration: "Creates executive summaries and abstracts.",
	AgentSchedulePlanning:   "Manages deadlines and scheduling based on civil procedure rules.",
	AgentQualityReview:      "Reviews outputs for errors, logic gaps, and quality assurance.",
}

// Description returns the unit's one-line responsibility, or "" for unknown agents.
func (a AgentType) Description() string { return agentDescriptions[a] }

// AgentStatus is the ephemeral per-run state of a single agent.
// It is reset at the start of every workflow run and never persisted.
type AgentStatus string

const (
	AgentStatusIdle      AgentStatus = "Idle"
	AgentStatusQueued    AgentStatus = "Queued"
	AgentStatusThinking  AgentStatus = "Thinking"
	AgentStatusWorking   AgentStatus = "Working"
	AgentStatusCompleted AgentStatus = "Completed"
	AgentStatusError     AgentStatus = "Error"
)

func (s AgentStatus) String() string { return string(s) }

func (s AgentStatus) IsValid() bool {
	switch s {
	case AgentStatusIdle, AgentStatusQueued, AgentStatusThinking,
		AgentStatusWorking, AgentStatusCompleted, AgentStatusError:
		return true
	}
	return false
}
