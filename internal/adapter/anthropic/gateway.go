// Package anthropic implements the agent invocation gateway on top of the
// Anthropic Messages API. One call runs one agent: the agent's role prompt,
// the case context, the upstream output, and the ready documents are folded
// into a single user message.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lexatlas/lexatlas-backend/internal/config"
	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// Documents beyond this count are not sent to the model.
const maxDocumentsPerCall = 3

// Gateway invokes analysis agents through the Anthropic API.
type Gateway struct {
	client    sdk.Client
	model     sdk.Model
	maxTokens int64
	log       *slog.Logger
}

// NewGateway creates a gateway from LLM configuration.
func NewGateway(cfg config.LLMConfig, log *slog.Logger) *Gateway {
	return &Gateway{
		client:    sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     sdk.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		log:       log.With("adapter", "anthropic"),
	}
}

// Invoke runs one agent over the ready documents and returns its text result.
// Only the documents' gateway projection (masked content when available) is
// ever sent to the model.
func (g *Gateway) Invoke(ctx context.Context, agent domain.AgentType, docs []domain.Document, caseDescription, upstream string) (string, error) {
	prompt, err := buildPrompt(agent, docs, caseDescription, upstream)
	if err != nil {
		return "", err
	}

	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: sdk.Float(0.3),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages api call: %w", err)
	}

	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		return "", fmt.Errorf("agent %s: empty response", agent)
	}

	g.log.DebugContext(ctx, "agent invocation completed",
		slog.String("agent", agent.String()),
		slog.Int("documents", len(docs)),
	)

	return msg.Content[0].Text, nil
}

// buildPrompt assembles the single user message for one agent invocation.
func buildPrompt(agent domain.AgentType, docs []domain.Document, caseDescription, upstream string) (string, error) {
	role, ok := agentPrompts[agent]
	if !ok {
		return "", fmt.Errorf("agent %s: no prompt registered", agent)
	}

	var b strings.Builder
	b.WriteString(role)
	b.WriteString("\n\nContext: ")
	b.WriteString(caseDescription)
	if upstream != "" {
		b.WriteString("\n\nPrevious Agent Output: ")
		b.WriteString(upstream)
	}

	if len(docs) > maxDocumentsPerCall {
		docs = docs[:maxDocumentsPerCall]
	}
	for _, doc := range docs {
		content := doc.GatewayContent()
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "\n\nDocument (%s):\n%s", doc.Name, content)
	}

	return b.String(), nil
}

// agentPrompts holds the role instruction for each analysis unit.
var agentPrompts = map[domain.AgentType]string{
	domain.AgentDocumentAnalysis: `You are the Document Analysis Unit of a litigation support system.
Parse the provided legal document: extract key entities (plaintiffs, defendants,
judges, courts, dates, monetary amounts), identify the document type, summarize
its structure, and list what categories of PII are present.`,

	domain.AgentEvidenceAnalysis: `You are the Evidence Analysis Unit.
Analyze the provided documents as evidence. Assess authenticity, chain of
custody implications, and evidentiary value. Flag potential hearsay or
admissibility issues.`,

	domain.AgentDisputeIdentify: `You are the Dispute Identify Unit.
Based on the analyzed documents, identify the core legal disputes. Classify
them into factual disputes and legal disputes, and list the specific causes
of action.`,

	domain.AgentLegalResearch: `You are the Law Explore Unit.
Based on the identified disputes, suggest relevant statutes and search for
potential case precedents. Provide three relevant citations and their
applicability.`,

	domain.AgentStrategyGeneration: `You are the Strategy Generation Unit.
Conduct a SWOT analysis for the client and propose three distinct litigation
strategies: aggressive, defensive, and settlement-oriented.`,

	domain.AgentDocumentDrafting: `You are the Document Generation Unit.
Draft a formal legal document (e.g. answer to complaint, motion to dismiss)
based on the chosen strategy, with proper legal formatting and tone.`,

	domain.AgentReportGeneration: `You are the Report Generation Unit.
Compile all findings into a comprehensive case analysis report including the
dispute summary, legal research, and strategic recommendations.`,

	domain.AgentAbstractGeneration: `You are the Abstract Generation Unit.
Create a concise one-paragraph executive summary of the case status and latest
developments.`,

	domain.AgentSchedulePlanning: `You are the Schedule Planning Unit.
Extract all dates from the documents, calculate responsive deadlines under the
applicable rules of civil procedure, and produce a timeline of events.`,

	domain.AgentQualityReview: `You are the Intelligent Review Unit.
Review the generated output for logical consistency, factual accuracy against
the source documents, and potential risks. Rate the quality of the analysis
from 1 to 10 and suggest improvements.`,
}
