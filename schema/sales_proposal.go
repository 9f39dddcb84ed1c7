package schema

import "strings"

const SalesProposalID = "sales_proposal_en"

// SalesProposal is the list-oriented English contract: objectives, scope and
// technologies come back as arrays of short items.
func SalesProposal() *Variant {
	return &Variant{
		ID:          SalesProposalID,
		Version:     1,
		Language:    "en",
		Name:        "sales_proposal",
		Description: "Business sales proposal, itemized fields, English output",
		Fields: []Field{
			{Name: "customer", Type: ShortText, Required: true,
				Description: "Name of the client or customer"},
			{Name: "industry", Type: ShortText, Required: true,
				Description: "Industry sector of the customer (e.g., Insurance, Banking, Retail)"},
			{Name: "projectTitle", Type: ShortText,
				Description: "Title of the sales proposal or project"},
			{Name: "date", Type: ShortText,
				Description: "Date of the proposal"},
			{Name: "objectives", Type: TextList, Required: true,
				Description: "List of project or business objectives described in the proposal"},
			{Name: "scope", Type: TextList, Required: true,
				Description: "Scope of the project or services to be provided"},
			{Name: "technologies", Type: TextList, Required: true,
				Description: "List of technologies, platforms, or tools proposed"},
			{Name: "solutionSummary", Type: FreeText, Required: true,
				Description: "Summary of the proposed solution"},
		},
		Instructions: salesProposalInstructions,
	}
}

var salesProposalInstructions = strings.Join([]string{
	"You are an expert in extracting structured information from business sales proposals.",
	"",
	"Your task is to extract the following:",
	"1. customer: the customer name.",
	"2. industry: the customer's industry (e.g., Insurance, Banking, Retail).",
	"3. projectTitle: the project title, including its version if available.",
	"4. date: the date of the proposal.",
	"5. objectives and scope: the project objectives and the scope of work, one short item per entry.",
	"6. solutionSummary and technologies: a summary of the proposed solution and the list of technologies mentioned.",
	"",
	"Please normalize technology names (e.g., Power BI, JavaScript, .NET) and clean the extracted data.",
	"If an optional field (projectTitle, date) is not available, omit it.",
	"Return the result as structured JSON.",
}, "\n")
