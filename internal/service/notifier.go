package service

// Event names pushed to live clients
const (
	EventSaleCreated             = "sale_created"
	EventCashLimitViolation      = "cash_limit_violation"
	EventEquipmentTransferred    = "equipment_transferred"
	EventEquipmentReceived       = "equipment_received"
	EventSupplierOrdersGenerated = "supplier_orders_generated"
)

// Notifier receives domain events once they are committed
type Notifier interface {
	Publish(event string, payload interface{})
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, interface{}) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
