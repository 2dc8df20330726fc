package workflow

import (
	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// outputs accumulates the result text of each completed agent within a run.
type outputs map[domain.AgentType]string

// node is one agent invocation in the plan. Its input function derives the
// upstream text handed to the agent from the outputs gathered so far.
type node struct {
	agent domain.AgentType
	input func(o outputs) string
}

func noInput(outputs) string { return "" }

func fromAgent(a domain.AgentType) func(outputs) string {
	return func(o outputs) string { return o[a] }
}

func fixed(instruction string) func(outputs) string {
	return func(outputs) string { return instruction }
}

// standardPlan is the fixed four-phase workflow. Phases run in order; nodes
// within a phase run concurrently. Analysis is a chain (evidence, then
// disputes, then research), strategy consumes disputes and research joined
// by a newline, the output phase fans out from strategy, and review closes
// the run with a fixed instruction.
func standardPlan() [][]node {
	return [][]node{
		{{agent: domain.AgentEvidenceAnalysis, input: noInput}},
		{{agent: domain.AgentDisputeIdentify, input: fromAgent(domain.AgentEvidenceAnalysis)}},
		{{agent: domain.AgentLegalResearch, input: fromAgent(domain.AgentDisputeIdentify)}},
		{{agent: domain.AgentStrategyGeneration, input: func(o outputs) string {
			return o[domain.AgentDisputeIdentify] + "\n" + o[domain.AgentLegalResearch]
		}}},
		{
			{agent: domain.AgentDocumentDrafting, input: fromAgent(domain.AgentStrategyGeneration)},
			{agent: domain.AgentSchedulePlanning, input: fixed("Analyze deadlines from DAU output")},
			{agent: domain.AgentAbstractGeneration, input: fromAgent(domain.AgentStrategyGeneration)},
		},
		{{agent: domain.AgentQualityReview, input: fixed("Review all previous outputs")}},
	}
}
