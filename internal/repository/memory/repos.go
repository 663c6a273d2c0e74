package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type supplierRepo struct{ v *view }

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&supplier.BaseModel, now)
		d.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var out []model.Supplier
	err := r.v.read(func(d *dataset) error {
		out = sortedValues(d.suppliers, func(a, b model.Supplier) int {
			return strings.Compare(a.Name, b.Name)
		})
		return nil
	})
	return out, err
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var out *model.Supplier
	err := r.v.read(func(d *dataset) error {
		s, ok := d.suppliers[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *supplierRepo) FindFirst() (*model.Supplier, error) {
	var out *model.Supplier
	err := r.v.read(func(d *dataset) error {
		all := sortedValues(d.suppliers, func(a, b model.Supplier) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		if len(all) == 0 {
			return repository.ErrNotFound
		}
		out = &all[0]
		return nil
	})
	return out, err
}

func (r *supplierRepo) FindByEquipmentName(name string) (*model.Supplier, error) {
	var out *model.Supplier
	err := r.v.read(func(d *dataset) error {
		var earliest *model.Equipment
		for _, e := range d.equipment {
			if e.Name != name {
				continue
			}
			if _, ok := d.suppliers[e.SupplierID]; !ok {
				continue
			}
			if earliest == nil || e.ReceiptDate.Before(earliest.ReceiptDate) {
				earliest = &e
			}
		}
		if earliest == nil {
			return repository.ErrNotFound
		}
		s := d.suppliers[earliest.SupplierID]
		out = &s
		return nil
	})
	return out, err
}

type storePointRepo struct{ v *view }

func (r *storePointRepo) Create(storePoint *model.StorePoint) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&storePoint.BaseModel, now)
		row := *storePoint
		row.CashRegisters = nil
		d.storePoints[row.ID] = row
		return nil
	})
}

func (r *storePointRepo) FindAll() ([]model.StorePoint, error) {
	var out []model.StorePoint
	err := r.v.read(func(d *dataset) error {
		out = sortedValues(d.storePoints, func(a, b model.StorePoint) int {
			return strings.Compare(a.Name, b.Name)
		})
		for i := range out {
			for _, reg := range d.registers {
				if reg.StorePointID == out[i].ID {
					out[i].CashRegisters = append(out[i].CashRegisters, reg)
				}
			}
			slices.SortFunc(out[i].CashRegisters, func(a, b model.CashRegister) int {
				return strings.Compare(a.RegistrationNumber, b.RegistrationNumber)
			})
		}
		return nil
	})
	return out, err
}

func (r *storePointRepo) FindByID(id uuid.UUID) (*model.StorePoint, error) {
	var out *model.StorePoint
	err := r.v.read(func(d *dataset) error {
		sp, ok := d.storePoints[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &sp
		return nil
	})
	return out, err
}

type cashRegisterRepo struct{ v *view }

func (r *cashRegisterRepo) Create(register *model.CashRegister) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		for _, existing := range d.registers {
			if existing.RegistrationNumber == register.RegistrationNumber {
				return ErrDuplicate
			}
		}
		stamp(&register.BaseModel, now)
		row := *register
		row.StorePoint = nil
		d.registers[row.ID] = row
		return nil
	})
}

func (r *cashRegisterRepo) FindAll() ([]model.CashRegister, error) {
	var out []model.CashRegister
	err := r.v.read(func(d *dataset) error {
		out = sortedValues(d.registers, func(a, b model.CashRegister) int {
			return strings.Compare(a.RegistrationNumber, b.RegistrationNumber)
		})
		for i := range out {
			out[i].StorePoint = storePointRef(d, out[i].StorePointID)
		}
		return nil
	})
	return out, err
}

func (r *cashRegisterRepo) FindByID(id uuid.UUID) (*model.CashRegister, error) {
	var out *model.CashRegister
	err := r.v.read(func(d *dataset) error {
		reg, ok := d.registers[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &reg
		return nil
	})
	return out, err
}

// The store mutex already serializes transactions, so locking is a plain read
func (r *cashRegisterRepo) LockForStorePoint(id, storePointID uuid.UUID) (*model.CashRegister, error) {
	reg, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if reg.StorePointID != storePointID {
		return nil, repository.ErrNotFound
	}
	return reg, nil
}

func (r *cashRegisterRepo) Lock(id uuid.UUID) (*model.CashRegister, error) {
	return r.FindByID(id)
}

type sellerRepo struct{ v *view }

func (r *sellerRepo) Create(seller *model.Seller) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&seller.BaseModel, now)
		d.sellers[seller.ID] = *seller
		return nil
	})
}

func (r *sellerRepo) FindAll() ([]model.Seller, error) {
	var out []model.Seller
	err := r.v.read(func(d *dataset) error {
		out = sortedValues(d.sellers, func(a, b model.Seller) int {
			return cmp.Or(strings.Compare(a.LastName, b.LastName), strings.Compare(a.FirstName, b.FirstName))
		})
		return nil
	})
	return out, err
}

func (r *sellerRepo) FindByID(id uuid.UUID) (*model.Seller, error) {
	var out *model.Seller
	err := r.v.read(func(d *dataset) error {
		s, ok := d.sellers[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

type equipmentRepo struct{ v *view }

func (r *equipmentRepo) Create(equipment *model.Equipment) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&equipment.BaseModel, now)
		row := *equipment
		row.Supplier, row.StorePoint = nil, nil
		d.equipment[row.ID] = row
		return nil
	})
}

func (r *equipmentRepo) FindByID(id uuid.UUID) (*model.Equipment, error) {
	var out *model.Equipment
	err := r.v.read(func(d *dataset) error {
		e, ok := d.equipment[id]
		if !ok {
			return repository.ErrNotFound
		}
		withEquipmentRelations(d, &e)
		out = &e
		return nil
	})
	return out, err
}

func (r *equipmentRepo) FindAll(filter repository.EquipmentFilter) ([]model.Equipment, error) {
	var out []model.Equipment
	err := r.v.read(func(d *dataset) error {
		out = []model.Equipment{}
		for _, e := range d.equipment {
			if !filter.IncludeSold && e.IsSold {
				continue
			}
			if filter.StorePointID != nil && (e.StorePointID == nil || *e.StorePointID != *filter.StorePointID) {
				continue
			}
			if filter.CentralOnly && !e.IsOnCentralWarehouse {
				continue
			}
			if filter.ReceivedFrom != nil && e.ReceiptDate.Before(*filter.ReceivedFrom) {
				continue
			}
			if filter.ReceivedTo != nil && e.ReceiptDate.After(*filter.ReceivedTo) {
				continue
			}
			withEquipmentRelations(d, &e)
			out = append(out, e)
		}
		slices.SortFunc(out, func(a, b model.Equipment) int {
			return cmp.Or(a.ReceiptDate.Compare(b.ReceiptDate), strings.Compare(a.Name, b.Name))
		})
		return nil
	})
	return out, err
}

func (r *equipmentRepo) Lock(id uuid.UUID) (*model.Equipment, error) {
	var out *model.Equipment
	err := r.v.read(func(d *dataset) error {
		e, ok := d.equipment[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *equipmentRepo) MarkSold(id uuid.UUID, soldAt time.Time) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		e, ok := d.equipment[id]
		if !ok || e.IsSold {
			return repository.ErrStaleUpdate
		}
		e.IsSold = true
		e.SoldDate = &soldAt
		e.UpdatedAt = now
		d.equipment[id] = e
		return nil
	})
}

func (r *equipmentRepo) MoveToStorePoint(id, storePointID uuid.UUID) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		e, ok := d.equipment[id]
		if !ok || e.IsSold {
			return repository.ErrStaleUpdate
		}
		e.IsOnCentralWarehouse = false
		e.StorePointID = &storePointID
		e.UpdatedAt = now
		d.equipment[id] = e
		return nil
	})
}

type saleRepo struct{ v *view }

func (r *saleRepo) Create(sale *model.Sale) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		for _, item := range sale.Items {
			for _, existing := range d.saleItems {
				if existing.EquipmentID == item.EquipmentID {
					return ErrDuplicate
				}
			}
		}
		for _, existing := range d.sales {
			if sameNumber(existing.CheckNumber, sale.CheckNumber) || sameNumber(existing.PaymentOrderNumber, sale.PaymentOrderNumber) {
				return ErrDuplicate
			}
		}

		stamp(&sale.BaseModel, now)
		for i := range sale.Items {
			item := &sale.Items[i]
			stamp(&item.BaseModel, now)
			item.SaleID = sale.ID
			row := *item
			row.Equipment = nil
			d.saleItems[row.ID] = row
		}
		row := *sale
		row.Items, row.Seller, row.StorePoint, row.CashRegister = nil, nil, nil, nil
		d.sales[row.ID] = row
		return nil
	})
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var out *model.Sale
	err := r.v.read(func(d *dataset) error {
		s, ok := d.sales[id]
		if !ok {
			return repository.ErrNotFound
		}
		withSaleRelations(d, &s)
		if s.CashRegisterID != nil {
			if reg, ok := d.registers[*s.CashRegisterID]; ok {
				s.CashRegister = &reg
			}
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *saleRepo) FindBySeller(sellerID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	err := r.v.read(func(d *dataset) error {
		out = []model.Sale{}
		for _, s := range d.sales {
			if s.SellerID != sellerID {
				continue
			}
			withSaleRelations(d, &s)
			out = append(out, s)
		}
		slices.SortFunc(out, func(a, b model.Sale) int {
			return b.SaleDate.Compare(a.SaleDate)
		})
		return nil
	})
	return out, err
}

func (r *saleRepo) SumForRegister(registerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.read(func(d *dataset) error {
		for _, s := range d.sales {
			if s.CashRegisterID != nil && *s.CashRegisterID == registerID && inRange(s.SaleDate, from, to) {
				total = total.Add(s.TotalWithSalesTax)
			}
		}
		return nil
	})
	return total, err
}

type customerOrderRepo struct{ v *view }

func (r *customerOrderRepo) Create(order *model.CustomerOrder) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&order.BaseModel, now)
		row := *order
		row.Seller = nil
		d.customerOrders[row.ID] = row
		return nil
	})
}

func (r *customerOrderRepo) FindUnprocessed(from, to time.Time) ([]model.CustomerOrder, error) {
	return r.find(func(o model.CustomerOrder) bool {
		return !o.IsProcessed && inRange(o.OrderDate, from, to)
	})
}

func (r *customerOrderRepo) FindBySeller(sellerID uuid.UUID, from, to time.Time) ([]model.CustomerOrder, error) {
	return r.find(func(o model.CustomerOrder) bool {
		return o.SellerID == sellerID && inRange(o.OrderDate, from, to)
	})
}

func (r *customerOrderRepo) find(match func(o model.CustomerOrder) bool) ([]model.CustomerOrder, error) {
	var out []model.CustomerOrder
	err := r.v.read(func(d *dataset) error {
		out = []model.CustomerOrder{}
		for _, o := range d.customerOrders {
			if match(o) {
				out = append(out, o)
			}
		}
		slices.SortFunc(out, func(a, b model.CustomerOrder) int {
			return a.OrderDate.Compare(b.OrderDate)
		})
		return nil
	})
	return out, err
}

func (r *customerOrderRepo) MarkProcessed(ids []uuid.UUID) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		for _, id := range ids {
			o, ok := d.customerOrders[id]
			if !ok {
				continue
			}
			o.IsProcessed = true
			o.UpdatedAt = now
			d.customerOrders[id] = o
		}
		return nil
	})
}

type supplierOrderRepo struct{ v *view }

func (r *supplierOrderRepo) CreateBatch(orders []model.SupplierOrder) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		for i := range orders {
			stamp(&orders[i].BaseModel, now)
			row := orders[i]
			row.Supplier = nil
			d.supplierOrders[row.ID] = row
		}
		return nil
	})
}

func (r *supplierOrderRepo) FindByWeek(from, to time.Time) ([]model.SupplierOrder, error) {
	var out []model.SupplierOrder
	err := r.v.read(func(d *dataset) error {
		out = []model.SupplierOrder{}
		for _, o := range d.supplierOrders {
			if o.WeekStartDate.Before(from) || o.WeekEndDate.After(to) {
				continue
			}
			if s, ok := d.suppliers[o.SupplierID]; ok {
				o.Supplier = &s
			}
			out = append(out, o)
		}
		slices.SortFunc(out, func(a, b model.SupplierOrder) int {
			return a.OrderDate.Compare(b.OrderDate)
		})
		return nil
	})
	return out, err
}

type violationRepo struct{ v *view }

func (r *violationRepo) Create(violation *model.CashLimitViolation) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&violation.BaseModel, now)
		row := *violation
		row.CashRegister = nil
		d.violations[row.ID] = row
		return nil
	})
}

func (r *violationRepo) ExistsBetween(registerID uuid.UUID, from, to time.Time) (bool, error) {
	found := false
	err := r.v.read(func(d *dataset) error {
		for _, v := range d.violations {
			if v.CashRegisterID == registerID && inRange(v.ViolationDate, from, to) {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *violationRepo) FindAll() ([]model.CashLimitViolation, error) {
	var out []model.CashLimitViolation
	err := r.v.read(func(d *dataset) error {
		out = sortedValues(d.violations, func(a, b model.CashLimitViolation) int {
			return b.ViolationDate.Compare(a.ViolationDate)
		})
		for i := range out {
			if reg, ok := d.registers[out[i].CashRegisterID]; ok {
				reg.StorePoint = storePointRef(d, reg.StorePointID)
				out[i].CashRegister = &reg
			}
		}
		return nil
	})
	return out, err
}

type scheduleRepo struct{ v *view }

func (r *scheduleRepo) Create(schedule *model.SellerSchedule) error {
	return r.v.write(func(d *dataset, now time.Time) error {
		stamp(&schedule.BaseModel, now)
		row := *schedule
		row.Seller, row.StorePoint = nil, nil
		d.schedules[row.ID] = row
		return nil
	})
}

func (r *scheduleRepo) FindByID(id uuid.UUID) (*model.SellerSchedule, error) {
	var out *model.SellerSchedule
	err := r.v.read(func(d *dataset) error {
		s, ok := d.schedules[id]
		if !ok {
			return repository.ErrNotFound
		}
		withScheduleRelations(d, &s)
		out = &s
		return nil
	})
	return out, err
}

func (r *scheduleRepo) Delete(id uuid.UUID) error {
	return r.v.read(func(d *dataset) error {
		if _, ok := d.schedules[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.schedules, id)
		return nil
	})
}

func (r *scheduleRepo) FindBySeller(sellerID uuid.UUID, from, to time.Time) ([]model.SellerSchedule, error) {
	var out []model.SellerSchedule
	err := r.v.read(func(d *dataset) error {
		out = []model.SellerSchedule{}
		for _, s := range d.schedules {
			if s.SellerID == sellerID && inRange(s.WorkDate, from, to) {
				withScheduleRelations(d, &s)
				out = append(out, s)
			}
		}
		slices.SortFunc(out, func(a, b model.SellerSchedule) int {
			return cmp.Or(a.WorkDate.Compare(b.WorkDate), strings.Compare(a.StartTime, b.StartTime))
		})
		return nil
	})
	return out, err
}

func (r *scheduleRepo) FindOverlapping(sellerID uuid.UUID, workDate time.Time, startTime, endTime string) ([]model.SellerSchedule, error) {
	var out []model.SellerSchedule
	err := r.v.read(func(d *dataset) error {
		for _, s := range d.schedules {
			if s.SellerID != sellerID || !s.WorkDate.Equal(workDate) {
				continue
			}
			if s.StartTime < endTime && s.EndTime > startTime {
				out = append(out, s)
			}
		}
		return nil
	})
	return out, err
}

func storePointRef(d *dataset, id uuid.UUID) *model.StorePoint {
	sp, ok := d.storePoints[id]
	if !ok {
		return nil
	}
	return &sp
}

func withEquipmentRelations(d *dataset, e *model.Equipment) {
	if s, ok := d.suppliers[e.SupplierID]; ok {
		e.Supplier = &s
	}
	if e.StorePointID != nil {
		e.StorePoint = storePointRef(d, *e.StorePointID)
	}
}

func withSaleRelations(d *dataset, s *model.Sale) {
	if seller, ok := d.sellers[s.SellerID]; ok {
		s.Seller = &seller
	}
	s.StorePoint = storePointRef(d, s.StorePointID)
	s.Items = nil
	for _, item := range d.saleItems {
		if item.SaleID != s.ID {
			continue
		}
		if e, ok := d.equipment[item.EquipmentID]; ok {
			item.Equipment = &e
		}
		s.Items = append(s.Items, item)
	}
	slices.SortFunc(s.Items, func(a, b model.SaleItem) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})
}

func withScheduleRelations(d *dataset, s *model.SellerSchedule) {
	if seller, ok := d.sellers[s.SellerID]; ok {
		s.Seller = &seller
	}
	s.StorePoint = storePointRef(d, s.StorePointID)
}

func sameNumber(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func sortedValues[K comparable, V any](m map[K]V, compare func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, compare)
	return out
}
