package domain

// MintAuthority represents the post-launch disposition of the mint authority.
type MintAuthority string

const (
	MintAuthorityPermanent MintAuthority = "permanent" // authority burnt, supply fixed forever
	MintAuthorityRevocable MintAuthority = "revocable" // authority held but revocable later
	MintAuthorityNone      MintAuthority = "none"      // no authority set
)

// TokenProtocol represents the token program the mint was created under.
type TokenProtocol string

const (
	ProtocolSPL       TokenProtocol = "spl"
	ProtocolToken2022 TokenProtocol = "token2022"
)

// TokenConfig is a read-only snapshot of a token configuration fed into
// risk scoring. It has no identity and no lifecycle beyond the call.
type TokenConfig struct {
	Name     string
	Symbol   string
	Decimals int
	Supply   float64

	MintAuthority   MintAuthority
	FreezeAuthority bool // freeze authority retained
	UpdateAuthority bool // metadata update authority retained

	Description string
	Image       string
	Website     string
	Twitter     string
	Telegram    string

	TransferFeePct *float64      // token2022 transfer fee, percent (nil = none)
	Protocol       TokenProtocol // spl | token2022

	HasLiquidity    bool
	LiquidityLocked bool
}

// SocialLinkCount returns the number of distinct social links present.
func (c *TokenConfig) SocialLinkCount() int {
	n := 0
	if c.Website != "" {
		n++
	}
	if c.Twitter != "" {
		n++
	}
	if c.Telegram != "" {
		n++
	}
	return n
}
