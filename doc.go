// Package invest computes realized and unrealized profit-and-loss for a
// portfolio of Chinese A-share stocks and open-ended mutual funds, from a
// YAML ledger of buy/sell/dividend transactions.
//
// Cost allocation is strictly First-In-First-Out: each purchase (and each
// stock dividend, at zero cost) opens a lot, and sells consume lots from the
// oldest forward. Annualized performance is an XIRR over the dated cash
// flows, with remaining holdings valued at market as a synthetic terminal
// flow. Results come in two windows: a single calendar year, or the complete
// history from the first transaction to now.
//
// Market prices come from pluggable PriceSource implementations: Tushare Pro
// for stock closes and East Money for fund NAVs, both resolving non-trading
// days to the nearest prior trading day of the mainland exchange calendar.
package invest
