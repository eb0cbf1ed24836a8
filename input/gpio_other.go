//go:build !linux

package input

// GPIOButtons is unavailable off Linux
type GPIOButtons struct{}

// OpenGPIOButtons always fails off Linux
func OpenGPIOButtons(cfg GPIOConfig, target Buttons) (*GPIOButtons, error) {
	return nil, ErrGPIOUnsupported
}

// Close is a no-op
func (g *GPIOButtons) Close() error {
	return nil
}
