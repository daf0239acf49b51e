package clientip

const (
	eventInvalidChainEntry  = "invalid_chain_entry"
	eventChainExhausted     = "chain_exhausted"
	eventInvalidHeaderValue = "invalid_header_value"
	eventUnknownClient      = "unknown_client"
)
