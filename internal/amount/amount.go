package amount

import "holdings-pipeline/internal/models"

// Resolve returns the signed satoshi delta a transaction causes for one
// address: every input funded by the address subtracts its prevout value,
// every output paying the address adds its value. Self-transfers net out
// because both sides apply independently per occurrence.
func Resolve(tx models.RawTransaction, address string) int64 {
	var sats int64
	for _, in := range tx.Vin {
		if in.Prevout.ScriptPubKeyAddress == address {
			sats -= in.Prevout.Value
		}
	}
	for _, out := range tx.Vout {
		if out.ScriptPubKeyAddress == address {
			sats += out.Value
		}
	}
	return sats
}
