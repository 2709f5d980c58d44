package allocator

import (
	"context"
	"fmt"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Allocator перечисляет доступные слоты на дату, сверяя рабочие часы,
// занятость календарей и travel-буферы.
//
// Кандидаты идут по фиксированной сетке от времени открытия. Кандидат
// проходит, если полный интервал (дорога туда + съёмка + дорога
// обратно) умещается в рабочие часы, не пересекается с занятыми
// интервалами хотя бы одного фотографа и оставляет достаточный зазор
// до соседних выездных событий.
type Allocator struct {
	busy     BusySource
	calendar OperatingCalendar
	travel   TravelEstimator
	opts     Options
	log      Logger
}

// New создает новый аллокатор слотов
func New(busy BusySource, calendar OperatingCalendar, travel TravelEstimator, opts Options, log Logger) *Allocator {
	if opts.StepMinutes <= 0 {
		opts.StepMinutes = domain.SlotStepMinutes
	}
	if opts.GapBufferBasis == "" {
		opts.GapBufferBasis = GapBasisSlot
	}
	return &Allocator{
		busy:     busy,
		calendar: calendar,
		travel:   travel,
		opts:     opts,
		log:      log,
	}
}

// ListSlots возвращает все доступные слоты на дату по порядку времени.
// Ошибки календаря дат (ErrNotBookable) пробрасываются вызывающему.
func (a *Allocator) ListSlots(ctx context.Context, req Request) ([]domain.Slot, error) {
	return a.enumerate(ctx, req, false)
}

// HasAnySlot проверяет, есть ли на дату хотя бы один доступный слот.
// Останавливается на первом найденном.
func (a *Allocator) HasAnySlot(ctx context.Context, req Request) (bool, error) {
	slots, err := a.enumerate(ctx, req, true)
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}

func (a *Allocator) enumerate(ctx context.Context, req Request, stopAtFirst bool) ([]domain.Slot, error) {
	// 1. Рабочие часы на дату; здесь же отсекаются прошлые даты,
	// день в день, отсечка на завтра и выходные
	window, err := a.calendar.WindowFor(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	openMin, err := window.OpenTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("allocator: invalid open time %q: %w", window.OpenTime, err)
	}
	closeMin, err := window.CloseTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("allocator: invalid close time %q: %w", window.CloseTime, err)
	}

	// 2. Занятость календарей за локальные сутки
	loc := a.calendar.Location()
	d := req.Date.In(loc)
	dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	resources := orderResources(req.Resources)
	resourceIDs := make([]string, 0, len(resources))
	for _, r := range resources {
		resourceIDs = append(resourceIDs, r.ID)
	}

	busyByResource, err := a.busy.GetBusyIntervals(ctx, resourceIDs, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	appointment := req.Quote.AppointmentMinutes()
	if appointment <= 0 {
		return nil, fmt.Errorf("allocator: non-positive appointment duration %d", appointment)
	}

	// 3. Перебор кандидатов по сетке от времени открытия
	var slots []domain.Slot
	for startMin := openMin; startMin+appointment <= closeMin; startMin += a.opts.StepMinutes {
		buffer := a.candidateBuffer(ctx, req, dayStart, startMin)

		// Полный интервал с дорогой должен умещаться в рабочие часы
		if startMin-buffer < openMin || startMin+appointment+buffer > closeMin {
			continue
		}

		apptStart := dayStart.Add(time.Duration(startMin) * time.Minute)
		apptEnd := apptStart.Add(time.Duration(appointment) * time.Minute)
		spanStart := apptStart.Add(-time.Duration(buffer) * time.Minute)
		spanEnd := apptEnd.Add(time.Duration(buffer) * time.Minute)

		slot, ok := a.pickResource(ctx, resources, busyByResource, req, apptStart, apptEnd, spanStart, spanEnd)
		if !ok {
			continue
		}

		startTS, err := types.NewTimeStringFromMinutes(startMin)
		if err != nil {
			return nil, fmt.Errorf("allocator: candidate start: %w", err)
		}
		endTS, err := types.NewTimeStringFromMinutes(startMin + appointment)
		if err != nil {
			return nil, fmt.Errorf("allocator: candidate end: %w", err)
		}

		slot.Date = dayStart
		slot.StartTime = startTS
		slot.EndTime = endTS
		slots = append(slots, slot)

		if stopAtFirst {
			return slots, nil
		}
	}

	return slots, nil
}

// candidateBuffer возвращает travel-буфер кандидата. При включённом
// пересчёте по трафику буфер пересчитывается от времени начала съёмки
// и применяется только при отклонении не меньше гранулярности.
func (a *Allocator) candidateBuffer(ctx context.Context, req Request, dayStart time.Time, startMin int) int {
	buffer := req.Quote.TravelBufferMinutes

	if !a.opts.TrafficAwareRecalc || !req.Quote.HasTravel() || req.Address == "" || a.travel == nil {
		return buffer
	}

	arrival := dayStart.Add(time.Duration(startMin) * time.Minute)
	recalced := a.travel.BufferMinutes(ctx, req.Address, &arrival)

	delta := recalced - buffer
	if delta < 0 {
		delta = -delta
	}
	if delta >= domain.TravelBufferGranularityMinutes {
		return recalced
	}
	return buffer
}

// pickResource находит первого свободного фотографа для кандидата.
// Порядок ресурсов: основной первым.
func (a *Allocator) pickResource(ctx context.Context, resources []domain.Resource, busyByResource map[string]domain.ResourceBusy, req Request, apptStart, apptEnd, spanStart, spanEnd time.Time) (domain.Slot, bool) {
	for _, resource := range resources {
		rb, ok := busyByResource[resource.ID]
		// Недоступный календарь = ресурс полностью занят (fail closed)
		if !ok || rb.Failed {
			continue
		}

		if a.resourceFree(ctx, req, rb.Intervals, apptStart, apptEnd, spanStart, spanEnd) {
			return domain.Slot{
				ResourceID:        resource.ID,
				IsPrimaryResource: resource.IsPrimary,
			}, true
		}
	}
	return domain.Slot{}, false
}

func (a *Allocator) resourceFree(ctx context.Context, req Request, intervals []domain.BusyInterval, apptStart, apptEnd, spanStart, spanEnd time.Time) bool {
	// Зазор на дорогу нужен только выездным съёмкам: без адреса
	// кандидат не требует переезда между локациями
	checkGap := req.Address != ""

	var prior, next *domain.BusyInterval

	for i := range intervals {
		iv := &intervals[i]
		if !iv.Status.Blocks() {
			continue
		}
		if iv.Overlaps(spanStart, spanEnd) {
			return false
		}
		// Ближайшие выездные соседи для проверки зазора
		if checkGap && iv.Location != "" {
			if !iv.End.After(spanStart) && (prior == nil || iv.End.After(prior.End)) {
				prior = iv
			}
			if !iv.Start.Before(spanEnd) && (next == nil || iv.Start.Before(next.Start)) {
				next = iv
			}
		}
	}

	if !checkGap {
		return true
	}
	return a.gapSufficient(ctx, prior, next, apptStart, apptEnd)
}

// gapSufficient проверяет, что зазоры до соседних выездных событий
// вмещают дорогу от их адресов, а не только от студии
func (a *Allocator) gapSufficient(ctx context.Context, prior, next *domain.BusyInterval, apptStart, apptEnd time.Time) bool {
	if a.travel == nil {
		return true
	}

	if prior != nil {
		basis := apptStart
		if a.opts.GapBufferBasis == GapBasisAdjacentEvent {
			basis = prior.End
		}
		required := a.travel.BufferMinutes(ctx, prior.Location, &basis)
		gap := int(apptStart.Sub(prior.End) / time.Minute)
		if gap < required {
			return false
		}
	}

	if next != nil {
		basis := apptEnd
		if a.opts.GapBufferBasis == GapBasisAdjacentEvent {
			basis = next.Start
		}
		required := a.travel.BufferMinutes(ctx, next.Location, &basis)
		gap := int(next.Start.Sub(apptEnd) / time.Minute)
		if gap < required {
			return false
		}
	}

	return true
}

// orderResources возвращает ресурсы с основным фотографом первым
func orderResources(resources []domain.Resource) []domain.Resource {
	ordered := make([]domain.Resource, 0, len(resources))
	for _, r := range resources {
		if r.IsPrimary {
			ordered = append(ordered, r)
		}
	}
	for _, r := range resources {
		if !r.IsPrimary {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
