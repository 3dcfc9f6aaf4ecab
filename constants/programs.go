package constants

import "github.com/gagliardetto/solana-go"

// Raydium AMM program ids.
const (
	AmmV4ProgramID           = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	AmmStableProgramID       = "5quBtoiQqxF9Jv6KYKctB59NT3gtJD2Y65kdnB1Uev3h"
	DevnetAmmV4ProgramID     = "HWy1jotHpo6UqeQxx49dpYYdQB8wj9Qk9MdxwjLvDHB8"
	DevnetAmmStableProgramID = "DDg4VmQaJV9ogWce7LpcjBA9bv22wRp5uaTPa5pGjijF"
)

var validAmmPrograms = map[string]struct{}{
	AmmV4ProgramID:           {},
	AmmStableProgramID:       {},
	DevnetAmmV4ProgramID:     {},
	DevnetAmmStableProgramID: {},
}

// IsValidAmm reports whether id is a known mainnet or devnet AMM program id.
func IsValidAmm(id string) bool {
	_, ok := validAmmPrograms[id]
	return ok
}

// IsValidAmmProgram is IsValidAmm for a decoded public key.
func IsValidAmmProgram(pk solana.PublicKey) bool {
	return IsValidAmm(pk.String())
}
