package crypto

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/swapkit-labs/sdk-go/types"
)

// FeePayerSigned is implemented by legacy transactions that expose only the
// fee payer signature. Signature returns nil when the transaction is unsigned.
type FeePayerSigned interface {
	Signature() []byte
}

// MultiSigned is implemented by versioned transactions that expose every
// signature in account order.
type MultiSigned interface {
	Signatures() [][]byte
}

// GetSignature returns the base58 fee payer signature of tx, which is also the
// transaction id used by the RPC node.
func GetSignature(tx interface{}) (string, error) {
	var sig []byte
	switch t := tx.(type) {
	case *solana.Transaction:
		if t == nil {
			return "", fmt.Errorf("nil transaction")
		}
		if len(t.Signatures) > 0 {
			sig = t.Signatures[0][:]
		}
	case FeePayerSigned:
		sig = t.Signature()
	case MultiSigned:
		if list := t.Signatures(); len(list) > 0 {
			sig = list[0]
		}
	default:
		return "", fmt.Errorf("unsupported transaction type %T", tx)
	}

	if isBlank(sig) {
		return "", fmt.Errorf("%w: the transaction was not signed by the fee payer", types.ErrMissingSignature)
	}
	return base58.Encode(sig), nil
}

// ParseSignature decodes a base58 transaction id.
func ParseSignature(s string) (solana.Signature, error) {
	sig, err := solana.SignatureFromBase58(s)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("parse signature %q: %w", s, err)
	}
	return sig, nil
}

// unsigned slots are zero filled
func isBlank(sig []byte) bool {
	for _, b := range sig {
		if b != 0 {
			return false
		}
	}
	return true
}
