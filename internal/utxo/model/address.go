package model

// Address is a graph node accumulating the inputs that spent from it and the outputs it received.
type Address struct {
	Coin      Coin
	Network   Network
	Address   string
	SpentFrom map[InputRef]struct{}
	Received  map[OutputRef]struct{}
}

// NewAddress returns an address without edges.
func NewAddress(coin Coin, network Network, address string) Address {
	return Address{
		Coin:      coin,
		Network:   network,
		Address:   address,
		SpentFrom: make(map[InputRef]struct{}),
		Received:  make(map[OutputRef]struct{}),
	}
}

// AddSpentFrom records an input spending an output owned by the address. It reports whether the edge is new.
func (a *Address) AddSpentFrom(ref InputRef) bool {
	if a.SpentFrom == nil {
		a.SpentFrom = make(map[InputRef]struct{})
	}
	if _, ok := a.SpentFrom[ref]; ok {
		return false
	}
	a.SpentFrom[ref] = struct{}{}
	return true
}

// AddReceived records an output owned by the address. It reports whether the edge is new.
func (a *Address) AddReceived(ref OutputRef) bool {
	if a.Received == nil {
		a.Received = make(map[OutputRef]struct{})
	}
	if _, ok := a.Received[ref]; ok {
		return false
	}
	a.Received[ref] = struct{}{}
	return true
}
