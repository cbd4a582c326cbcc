package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/upsight-uz/portal-api/model"
)

// Payment kinds in the merged finance feed.
const (
	PaymentTypeEntrance = "entrance"
	PaymentTypeClass    = "class"
)

// PaymentRecord is one row of the merged finance feed. Entrance and
// class payments carry different label fields; the absent kind's
// fields stay null.
type PaymentRecord struct {
	ID            string     `json:"id"` // "entrance_<id>" or "class_<id>"
	OriginalID    uint       `json:"original_id"`
	Date          model.Date `json:"date"`
	Amount        float64    `json:"amount"`
	PaymentType   string     `json:"payment_type"`
	StudentID     string     `json:"student_id"`
	StudentNameKo string     `json:"student_name_ko"`
	StudentNameUz string     `json:"student_name_uz"`
	StudentName   string     `json:"student_name"`

	// Entrance payments only
	UniversityName *string `json:"university_name"`
	EnteranceInfo  *string `json:"enterance_info"`

	// Class payments only
	PaymentMonth        *int    `json:"payment_month"`
	PaymentMonthDisplay *string `json:"payment_month_display"`
	ClassInfo           *string `json:"class_info"`
}

// PaymentTotals summarizes the merged feed. Amounts are cent-exact:
// sums are accumulated in integer cents and converted back once.
type PaymentTotals struct {
	TotalAmount           float64 `json:"total_amount"`
	EntrancePaymentsTotal float64 `json:"entrance_payments_total"`
	ClassPaymentsTotal    float64 `json:"class_payments_total"`
	EntrancePaymentsCount int     `json:"entrance_payments_count"`
	ClassPaymentsCount    int     `json:"class_payments_count"`
}

// FinanceService merges the two payment ledgers into one feed.
type FinanceService struct {
	db *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

// ListPayments loads both ledgers with their relations and returns the
// merged feed, newest first, plus totals.
func (s *FinanceService) ListPayments(ctx context.Context) ([]PaymentRecord, PaymentTotals, error) {
	var entrancePayments []model.EnterancePayment
	err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Enterance").
		Preload("Enterance.University").
		Find(&entrancePayments).Error
	if err != nil {
		return nil, PaymentTotals{}, err
	}

	var classPayments []model.ClassPayment
	err = s.db.WithContext(ctx).
		Preload("Student").
		Preload("Class").
		Find(&classPayments).Error
	if err != nil {
		return nil, PaymentTotals{}, err
	}

	records := MergePayments(entrancePayments, classPayments)
	return records, SumPayments(records), nil
}

// MergePayments converts both ledgers to the unified record shape and
// sorts by date descending. The sort is stable so same-date rows keep
// their ledger order (entrance rows before class rows).
func MergePayments(entrancePayments []model.EnterancePayment, classPayments []model.ClassPayment) []PaymentRecord {
	records := make([]PaymentRecord, 0, len(entrancePayments)+len(classPayments))

	for i := range entrancePayments {
		p := &entrancePayments[i]
		universityName := p.Enterance.University.DisplayName()
		enteranceInfo := p.Enterance.Info()
		records = append(records, PaymentRecord{
			ID:             fmt.Sprintf("entrance_%d", p.ID),
			OriginalID:     p.ID,
			Date:           p.Date,
			Amount:         p.Amount,
			PaymentType:    PaymentTypeEntrance,
			StudentID:      p.Student.StudentID,
			StudentNameKo:  p.Student.NameKo,
			StudentNameUz:  p.Student.NameUz,
			StudentName:    p.Student.Name(),
			UniversityName: &universityName,
			EnteranceInfo:  &enteranceInfo,
		})
	}

	for i := range classPayments {
		p := &classPayments[i]
		month := p.PaymentMonth
		monthDisplay := p.PaymentMonthDisplay()
		classInfo := p.Class.Info()
		records = append(records, PaymentRecord{
			ID:                  fmt.Sprintf("class_%d", p.ID),
			OriginalID:          p.ID,
			Date:                p.Date,
			Amount:              p.Amount,
			PaymentType:         PaymentTypeClass,
			StudentID:           p.Student.StudentID,
			StudentNameKo:       p.Student.NameKo,
			StudentNameUz:       p.Student.NameUz,
			StudentName:         p.Student.Name(),
			PaymentMonth:        &month,
			PaymentMonthDisplay: &monthDisplay,
			ClassInfo:           &classInfo,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date.Time)
	})

	return records
}

// SumPayments computes the feed totals in integer cents.
func SumPayments(records []PaymentRecord) PaymentTotals {
	var totals PaymentTotals
	var totalCents, entranceCents, classCents int64

	for i := range records {
		cents := toCents(records[i].Amount)
		totalCents += cents
		switch records[i].PaymentType {
		case PaymentTypeEntrance:
			entranceCents += cents
			totals.EntrancePaymentsCount++
		case PaymentTypeClass:
			classCents += cents
			totals.ClassPaymentsCount++
		}
	}

	totals.TotalAmount = fromCents(totalCents)
	totals.EntrancePaymentsTotal = fromCents(entranceCents)
	totals.ClassPaymentsTotal = fromCents(classCents)
	return totals
}

// SumAmounts totals a single ledger's amounts in integer cents.
func SumAmounts(amounts []float64) float64 {
	var cents int64
	for _, a := range amounts {
		cents += toCents(a)
	}
	return fromCents(cents)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
