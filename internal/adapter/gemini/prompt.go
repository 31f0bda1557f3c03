package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/simaogato/ledgerflow-backend/internal/domain"
)

const promptTemplate = `
You are a friendly and helpful financial advisor.
Based on the following JSON data of a user's recent transactions and their upcoming scheduled payments, analyze their financial situation.
Provide one short, actionable, and encouraging financial tip.
Keep the response concise and friendly, under 75 words.
Do not repeat the user's data back to them. Focus only on the advice.
Some expenses have an "owner" field, which can be 'mine' or 'other'. 'other' indicates an expense the user is paying for someone else.
Please consider this context when giving your advice. For example, you could acknowledge the financial responsibility of covering someone else's expenses.

Recent Transaction Data:
%s

Upcoming Scheduled Payments:
%s
`

// BuildPrompt renders the advisor instructions with both summaries embedded as indented JSON
func BuildPrompt(req domain.AdviceRequest) (string, error) {
	txs := req.Transactions
	if txs == nil {
		txs = []domain.AdviceTransaction{}
	}
	payments := req.UpcomingPayments
	if payments == nil {
		payments = []domain.AdvicePayment{}
	}

	txJSON, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode transactions: %w", err)
	}
	paymentJSON, err := json.MarshalIndent(payments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode upcoming payments: %w", err)
	}

	return fmt.Sprintf(promptTemplate, txJSON, paymentJSON), nil
}
