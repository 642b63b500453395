package models

import (
	"errors"
	"regexp"
	"time"
)

var walletAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// WalletLink ties a Twitter identity to the wallet holding its player shares.
// The leaderboard is just the list of all links, newest first.
type WalletLink struct {
	TwitterID         string    `json:"twitterId"`
	TwitterUsername   string    `json:"twitterUsername"`
	WalletAddress     string    `json:"walletAddress"`
	TopStrikeUsername string    `json:"topStrikeUsername,omitempty"`
	LinkedAt          time.Time `json:"linkedAt"`
}

// Validate checks that all wallet link fields are valid
func (w *WalletLink) Validate() error {
	if w.TwitterID == "" {
		return errors.New("twitter ID must not be empty")
	}
	if w.WalletAddress == "" {
		return errors.New("wallet address must not be empty")
	}
	if !walletAddressPattern.MatchString(w.WalletAddress) {
		return errors.New("wallet address must be a 0x-prefixed 40-hex-digit string")
	}
	if w.LinkedAt.After(time.Now().Add(time.Minute)) {
		return errors.New("linked at must not be in the future")
	}
	return nil
}
