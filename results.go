package invest

import "fmt"

// Warning is a recoverable condition collected during a calculation and
// returned with the result, so the rendering layer can show it. Warnings
// never abort a batch.
type Warning struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Code == "" {
		return w.Message
	}
	return w.Code + ": " + w.Message
}

func warnPriceUnavailable(code string, on Date) Warning {
	return Warning{Code: code, Message: fmt.Sprintf("no price available on %s, excluded from this window", on)}
}

func warnXirrFallback(code string) Warning {
	return Warning{Code: code, Message: "rate of return did not converge, showing the simple return instead"}
}

// CodeResult is the lifetime outcome of a single instrument inside a
// HistoryResult.
type CodeResult struct {
	Code             string  `json:"code"`
	TotalInvested    Money   `json:"total_invested"`
	CurrentValue     Money   `json:"current_value"`
	RealizedGain     Money   `json:"realized_gain"`
	UnrealizedGain   Money   `json:"unrealized_gain"`
	Dividends        Money   `json:"dividends"`
	CapitalGain      Money   `json:"capital_gain"`
	NetGain          Money   `json:"net_gain"`
	ReturnRate       Percent `json:"return_rate"`
	TransactionCount int     `json:"transaction_count"`
}

// HistoryResult aggregates the complete history of one instrument (Code set)
// or a whole portfolio (Code empty). It is immutable once built.
type HistoryResult struct {
	Code             string       `json:"code,omitempty"`
	FirstDate        Date         `json:"first_date"`
	LastDate         Date         `json:"last_date"`
	TotalInvested    Money        `json:"total_invested"`
	CurrentValue     Money        `json:"current_value"`
	RealizedGain     Money        `json:"realized_gain"`
	UnrealizedGain   Money        `json:"unrealized_gain"`
	Dividends        Money        `json:"dividends"`
	CapitalGain      Money        `json:"capital_gain"`
	NetGain          Money        `json:"net_gain"`
	ReturnRate       Percent      `json:"return_rate"`
	TransactionCount int          `json:"transaction_count"`
	Investments      []CodeResult `json:"investments,omitempty"`
	ExcludedCodes    []string     `json:"excluded_codes,omitempty"`
	Warnings         []Warning    `json:"warnings,omitempty"`
}

// AnnualRow is the outcome of one instrument within an annual window.
type AnnualRow struct {
	Code           string  `json:"code"`
	StartValue     Money   `json:"start_value"`
	EndValue       Money   `json:"end_value"`
	NewInvestments Money   `json:"new_investments"`
	Withdrawals    Money   `json:"withdrawals"`
	Dividends      Money   `json:"dividends"`
	CapitalGain    Money   `json:"capital_gain"` // realized during the year
	NetGain        Money   `json:"net_gain"`
	ReturnRate     Percent `json:"return_rate"`
}

// AnnualResult aggregates one calendar year for one instrument (Code set)
// or a whole portfolio (Code empty). It is immutable once built.
type AnnualResult struct {
	Year           int         `json:"year"`
	Code           string      `json:"code,omitempty"`
	StartValue     Money       `json:"start_value"`
	EndValue       Money       `json:"end_value"`
	NewInvestments Money       `json:"new_investments"`
	Withdrawals    Money       `json:"withdrawals"`
	Dividends      Money       `json:"dividends"`
	CapitalGain    Money       `json:"capital_gain"`
	NetGain        Money       `json:"net_gain"`
	ReturnRate     Percent     `json:"return_rate"`
	Rows           []AnnualRow `json:"rows,omitempty"`
	ExcludedCodes  []string    `json:"excluded_codes,omitempty"`
	Warnings       []Warning   `json:"warnings,omitempty"`
}
