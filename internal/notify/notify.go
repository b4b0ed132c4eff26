package notify

import "log"

// Notifier surfaces user-facing status messages produced by the cart,
// checkout and shipment flows. The server wires LogNotifier; tests wire
// a recorder to assert on exact message text.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Success(message string) {
	log.Printf("[notify] success: %s", message)
}

func (n *LogNotifier) Error(message string) {
	log.Printf("[notify] error: %s", message)
}

func (n *LogNotifier) Info(message string) {
	log.Printf("[notify] info: %s", message)
}
