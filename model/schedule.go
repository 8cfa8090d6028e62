package model

// LinearDecay lowers the learning rate linearly with the number of words
// processed, down to a floor of Start * 1e-4.
type LinearDecay struct {
	Start float32
	Total int64 // words expected over the whole run
}

func (d LinearDecay) Rate(processed int64) float32 {
	lr := d.Start * (1 - float32(processed)/float32(d.Total+1))
	if floor := d.Start * 0.0001; lr < floor {
		return floor
	}
	return lr
}
