package models

import "encoding/json"

// SurveyData is the nested benefits questionnaire document. Every field is
// optional: responses are filled in incrementally and persisted mid-edit, so
// nothing here may be assumed present. Scalars are pointers to distinguish
// "absent" from a deliberate zero (an employee count of 0 is an answer).
//
// JSON field names are the document's wire contract; validation findings and
// export rows reference them through fieldpath strings.
type SurveyData struct {
	GeneralInformation  *GeneralInformation  `json:"generalInformation,omitempty"`
	MedicalPlans        []MedicalPlan        `json:"medicalPlans,omitempty"`
	DentalPlans         []DentalPlan         `json:"dentalPlans,omitempty"`
	VisionPlans         []VisionPlan         `json:"visionPlans,omitempty"`
	BasicLifeDisability *BasicLifeDisability `json:"basicLifeDisability,omitempty"`
	Retirement          *Retirement          `json:"retirement,omitempty"`
	TimeOff             *TimeOff             `json:"timeOff,omitempty"`
	BenefitsStrategy    *BenefitsStrategy    `json:"benefitsStrategy,omitempty"`
	VoluntaryBenefits   *VoluntaryBenefits   `json:"voluntaryBenefits,omitempty"`
	BestPractices       *BestPractices       `json:"bestPractices,omitempty"`
}

// Top-level section keys, in questionnaire order.
const (
	SectionGeneralInformation  = "generalInformation"
	SectionMedicalPlans        = "medicalPlans"
	SectionDentalPlans         = "dentalPlans"
	SectionVisionPlans         = "visionPlans"
	SectionBasicLifeDisability = "basicLifeDisability"
	SectionRetirement          = "retirement"
	SectionTimeOff             = "timeOff"
	SectionBenefitsStrategy    = "benefitsStrategy"
	SectionVoluntaryBenefits   = "voluntaryBenefits"
	SectionBestPractices       = "bestPractices"
)

// SectionKeys lists every recognized top-level section key.
func SectionKeys() []string {
	return []string{
		SectionGeneralInformation,
		SectionMedicalPlans,
		SectionDentalPlans,
		SectionVisionPlans,
		SectionBasicLifeDisability,
		SectionRetirement,
		SectionTimeOff,
		SectionBenefitsStrategy,
		SectionVoluntaryBenefits,
		SectionBestPractices,
	}
}

// Map renders the document as a generic nested map, the view used by the
// progress scorer and export flattening. omitempty tags guarantee absent
// fields disappear rather than surfacing as zero values.
func (d *SurveyData) Map() map[string]any {
	if d == nil {
		return map[string]any{}
	}
	raw, err := json.Marshal(d)
	if err != nil {
		// The document is plain data; marshalling cannot fail in practice.
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// GeneralInformation identifies the responding organization.
type GeneralInformation struct {
	OrganizationName  *string  `json:"organizationName,omitempty"`
	ContactPerson     *string  `json:"contactPerson,omitempty"`
	Title             *string  `json:"title,omitempty"`
	Email             *string  `json:"email,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	Address           *string  `json:"address,omitempty"`
	City              *string  `json:"city,omitempty"`
	State             *string  `json:"state,omitempty"`
	Zip               *string  `json:"zip,omitempty"`
	FiscalYearEnd     *string  `json:"fiscalYearEnd,omitempty"`
	EmployeeCount     *int     `json:"employeeCount,omitempty"`
	EligibleEmployees *int     `json:"eligibleEmployees,omitempty"`
	AverageAge        *float64 `json:"averageAge,omitempty"`
	UnionStatus       *string  `json:"unionStatus,omitempty"`
	IndustryType      *string  `json:"industryType,omitempty"`
	CurrentBroker     *string  `json:"currentBroker,omitempty"`
	RenewalDate       *string  `json:"renewalDate,omitempty"`
}

// RateTier is one premium/contribution row for a coverage level.
// Invariant (enforced by the validator, not the type): employer plus employee
// contribution equals the monthly premium within a cent.
type RateTier struct {
	Tier                 *string  `json:"tier,omitempty"`
	MonthlyPremium       *float64 `json:"monthlyPremium,omitempty"`
	EmployeeContribution *float64 `json:"employeeContribution,omitempty"`
	EmployerContribution *float64 `json:"employerContribution,omitempty"`
	EnrollmentCount      *int     `json:"enrollmentCount,omitempty"`
}

// AmountRange holds an individual/family dollar amount pair.
type AmountRange struct {
	Individual   *float64 `json:"individual,omitempty"`
	Family       *float64 `json:"family,omitempty"`
	InNetwork    *float64 `json:"inNetwork,omitempty"`
	OutOfNetwork *float64 `json:"outOfNetwork,omitempty"`
}

type Coinsurance struct {
	InNetwork    *float64 `json:"inNetwork,omitempty"`
	OutOfNetwork *float64 `json:"outOfNetwork,omitempty"`
}

type Copays struct {
	PrimaryCare   *float64 `json:"primaryCare,omitempty"`
	Specialist    *float64 `json:"specialist,omitempty"`
	UrgentCare    *float64 `json:"urgentCare,omitempty"`
	EmergencyRoom *float64 `json:"emergencyRoom,omitempty"`
}

type PreventiveCare struct {
	Covered      *bool `json:"covered,omitempty"`
	NoDeductible *bool `json:"noDeductible,omitempty"`
}

// MedicalPlanDesign captures deductibles, out-of-pocket maxima, coinsurance
// and copays for one medical plan.
type MedicalPlanDesign struct {
	Deductible     *AmountRange    `json:"deductible,omitempty"`
	OutOfPocketMax *AmountRange    `json:"outOfPocketMax,omitempty"`
	Coinsurance    *Coinsurance    `json:"coinsurance,omitempty"`
	Copays         *Copays         `json:"copays,omitempty"`
	PreventiveCare *PreventiveCare `json:"preventiveCare,omitempty"`
}

type MedicalPlan struct {
	PlanID             *string            `json:"planId,omitempty"`
	PlanName           *string            `json:"planName,omitempty"`
	Carrier            *string            `json:"carrier,omitempty"`
	PlanType           *string            `json:"planType,omitempty"`
	NetworkType        *string            `json:"networkType,omitempty"`
	EffectiveDate      *string            `json:"effectiveDate,omitempty"`
	EnrolledEmployees  *int               `json:"enrolledEmployees,omitempty"`
	EnrolledDependents *int               `json:"enrolledDependents,omitempty"`
	RateTiers          []RateTier         `json:"rateTiers,omitempty"`
	PlanDesign         *MedicalPlanDesign `json:"planDesign,omitempty"`
	WellnessProgram    *bool              `json:"wellnessProgram,omitempty"`
	TelehealthIncluded *bool              `json:"telehealthIncluded,omitempty"`
	HSACompatible      *bool              `json:"hsaCompatible,omitempty"`
}

// DentalCoverage holds coverage percentages per service class.
type DentalCoverage struct {
	Preventive  *float64 `json:"preventive,omitempty"`
	Basic       *float64 `json:"basic,omitempty"`
	Major       *float64 `json:"major,omitempty"`
	Orthodontia *float64 `json:"orthodontia,omitempty"`
}

type DentalPlanDesign struct {
	AnnualMaximum      *float64        `json:"annualMaximum,omitempty"`
	Deductible         *AmountRange    `json:"deductible,omitempty"`
	Coverage           *DentalCoverage `json:"coverage,omitempty"`
	OrthodontiaMaximum *float64        `json:"orthodontiaMaximum,omitempty"`
}

type DentalPlan struct {
	PlanID             *string           `json:"planId,omitempty"`
	PlanName           *string           `json:"planName,omitempty"`
	Carrier            *string           `json:"carrier,omitempty"`
	PlanType           *string           `json:"planType,omitempty"`
	EffectiveDate      *string           `json:"effectiveDate,omitempty"`
	EnrolledEmployees  *int              `json:"enrolledEmployees,omitempty"`
	EnrolledDependents *int              `json:"enrolledDependents,omitempty"`
	RateTiers          []RateTier        `json:"rateTiers,omitempty"`
	PlanDesign         *DentalPlanDesign `json:"planDesign,omitempty"`
}

type VisionPlanDesign struct {
	ExamFrequency      *string  `json:"examFrequency,omitempty"`
	ExamCopay          *float64 `json:"examCopay,omitempty"`
	MaterialsAllowance *float64 `json:"materialsAllowance,omitempty"`
	LensesFrequency    *string  `json:"lensesFrequency,omitempty"`
	FramesAllowance    *float64 `json:"framesAllowance,omitempty"`
	FramesFrequency    *string  `json:"framesFrequency,omitempty"`
	ContactsAllowance  *float64 `json:"contactsAllowance,omitempty"`
	RetailDiscounts    *bool    `json:"retailDiscounts,omitempty"`
}

type VisionPlan struct {
	PlanID             *string           `json:"planId,omitempty"`
	PlanName           *string           `json:"planName,omitempty"`
	Carrier            *string           `json:"carrier,omitempty"`
	EffectiveDate      *string           `json:"effectiveDate,omitempty"`
	EnrolledEmployees  *int              `json:"enrolledEmployees,omitempty"`
	EnrolledDependents *int              `json:"enrolledDependents,omitempty"`
	RateTiers          []RateTier        `json:"rateTiers,omitempty"`
	PlanDesign         *VisionPlanDesign `json:"planDesign,omitempty"`
}

// BasicLifeDisability covers life insurance and disability offerings.
type BasicLifeDisability struct {
	BasicLife           *LifeCoverage       `json:"basicLife,omitempty"`
	SupplementalLife    *LifeCoverage       `json:"supplementalLife,omitempty"`
	ShortTermDisability *DisabilityCoverage `json:"shortTermDisability,omitempty"`
	LongTermDisability  *DisabilityCoverage `json:"longTermDisability,omitempty"`
}

type LifeCoverage struct {
	Offered        *bool    `json:"offered,omitempty"`
	Carrier        *string  `json:"carrier,omitempty"`
	CoverageAmount *float64 `json:"coverageAmount,omitempty"`
	EmployerPaid   *bool    `json:"employerPaid,omitempty"`
	ADAndDIncluded *bool    `json:"adAndDIncluded,omitempty"`
}

type DisabilityCoverage struct {
	Offered           *bool    `json:"offered,omitempty"`
	Carrier           *string  `json:"carrier,omitempty"`
	WeeklyBenefit     *float64 `json:"weeklyBenefit,omitempty"`
	MonthlyBenefit    *float64 `json:"monthlyBenefit,omitempty"`
	EliminationPeriod *int     `json:"eliminationPeriod,omitempty"`
	BenefitDuration   *string  `json:"benefitDuration,omitempty"`
	EmployerPaid      *bool    `json:"employerPaid,omitempty"`
}

// Retirement covers 401k/403b/pension offerings.
type Retirement struct {
	Plan401k    *Plan401k    `json:"plan401k,omitempty"`
	Plan403b    *Plan403b    `json:"plan403b,omitempty"`
	PensionPlan *PensionPlan `json:"pensionPlan,omitempty"`
}

type EmployerMatch struct {
	Provided        *bool   `json:"provided,omitempty"`
	Formula         *string `json:"formula,omitempty"`
	VestingSchedule *string `json:"vestingSchedule,omitempty"`
}

type Plan401k struct {
	Offered       *bool          `json:"offered,omitempty"`
	Provider      *string        `json:"provider,omitempty"`
	EmployerMatch *EmployerMatch `json:"employerMatch,omitempty"`
	RothOption    *bool          `json:"rothOption,omitempty"`
}

type Plan403b struct {
	Offered  *bool   `json:"offered,omitempty"`
	Provider *string `json:"provider,omitempty"`
}

type PensionPlan struct {
	Offered         *bool   `json:"offered,omitempty"`
	Type            *string `json:"type,omitempty"`
	VestingSchedule *string `json:"vestingSchedule,omitempty"`
}

// TimeOff covers PTO, sick leave, holidays and leave policies.
type TimeOff struct {
	PaidTimeOff   *PaidTimeOff   `json:"paidTimeOff,omitempty"`
	SickLeave     *SickLeave     `json:"sickLeave,omitempty"`
	Holidays      *Holidays      `json:"holidays,omitempty"`
	ParentalLeave *ParentalLeave `json:"parentalLeave,omitempty"`
	Bereavement   *Bereavement   `json:"bereavement,omitempty"`
}

// PTO structure values recognized by the validator.
const (
	PTOStructureAccrual     = "accrual"
	PTOStructureFrontLoaded = "front_loaded"
	PTOStructureUnlimited   = "unlimited"
)

type AccrualRate struct {
	YearsOfService *string  `json:"yearsOfService,omitempty"`
	AnnualDays     *float64 `json:"annualDays,omitempty"`
}

type PaidTimeOff struct {
	Offered          *bool         `json:"offered,omitempty"`
	Structure        *string       `json:"structure,omitempty"`
	AccrualRates     []AccrualRate `json:"accrualRates,omitempty"`
	CarryoverAllowed *bool         `json:"carryoverAllowed,omitempty"`
	CarryoverMax     *float64      `json:"carryoverMax,omitempty"`
}

type SickLeave struct {
	Offered    *bool    `json:"offered,omitempty"`
	Structure  *string  `json:"structure,omitempty"`
	AnnualDays *float64 `json:"annualDays,omitempty"`
}

type Holidays struct {
	Count            *int `json:"count,omitempty"`
	FloatingHolidays *int `json:"floatingHolidays,omitempty"`
}

type ParentalLeave struct {
	Offered        *bool `json:"offered,omitempty"`
	MaternityWeeks *int  `json:"maternityWeeks,omitempty"`
	PaternityWeeks *int  `json:"paternityWeeks,omitempty"`
	Paid           *bool `json:"paid,omitempty"`
}

type Bereavement struct {
	Offered *bool `json:"offered,omitempty"`
	Days    *int  `json:"days,omitempty"`
}

// BenefitsStrategy captures goals and communication plans.
type BenefitsStrategy struct {
	Objectives            []string               `json:"objectives,omitempty"`
	Challenges            []string               `json:"challenges,omitempty"`
	Priorities            []StrategyPriority     `json:"priorities,omitempty"`
	CommunicationStrategy *CommunicationStrategy `json:"communicationStrategy,omitempty"`
	Benchmarking          *Benchmarking          `json:"benchmarking,omitempty"`
}

type StrategyPriority struct {
	Category *string `json:"category,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type CommunicationStrategy struct {
	Methods   []string `json:"methods,omitempty"`
	Frequency *string  `json:"frequency,omitempty"`
}

type Benchmarking struct {
	InterestedInBenchmarking *bool    `json:"interestedInBenchmarking,omitempty"`
	ComparableOrganizations  []string `json:"comparableOrganizations,omitempty"`
}

// VoluntaryBenefits covers employee-paid supplemental offerings.
type VoluntaryBenefits struct {
	CriticalIllness *VoluntaryBenefit `json:"criticalIllness,omitempty"`
	Accident        *VoluntaryBenefit `json:"accident,omitempty"`
	Hospital        *VoluntaryBenefit `json:"hospital,omitempty"`
	LegalServices   *VoluntaryBenefit `json:"legalServices,omitempty"`
	IdentityTheft   *VoluntaryBenefit `json:"identityTheft,omitempty"`
	PetInsurance    *VoluntaryBenefit `json:"petInsurance,omitempty"`
}

type VoluntaryBenefit struct {
	Offered    *bool   `json:"offered,omitempty"`
	Carrier    *string `json:"carrier,omitempty"`
	Provider   *string `json:"provider,omitempty"`
	Enrollment *int    `json:"enrollment,omitempty"`
}

// BestPractices covers wellness, EAP and benefits-education programs.
type BestPractices struct {
	WellnessProgram    *WellnessProgram    `json:"wellnessProgram,omitempty"`
	EAP                *EAP                `json:"eap,omitempty"`
	FinancialWellness  *FinancialWellness  `json:"financialWellness,omitempty"`
	BenefitsEducation  *BenefitsEducation  `json:"benefitsEducation,omitempty"`
	DataAnalytics      *DataAnalytics      `json:"dataAnalytics,omitempty"`
	DiversityInclusion *DiversityInclusion `json:"diversityInclusion,omitempty"`
}

type WellnessProgram struct {
	Offered            *bool    `json:"offered,omitempty"`
	Components         []string `json:"components,omitempty"`
	IncentivesProvided *bool    `json:"incentivesProvided,omitempty"`
	ParticipationRate  *float64 `json:"participationRate,omitempty"`
}

type EAP struct {
	Offered         *bool    `json:"offered,omitempty"`
	Provider        *string  `json:"provider,omitempty"`
	SessionsPerYear *int     `json:"sessionsPerYear,omitempty"`
	UtilizationRate *float64 `json:"utilizationRate,omitempty"`
}

type FinancialWellness struct {
	Offered  *bool    `json:"offered,omitempty"`
	Services []string `json:"services,omitempty"`
	Provider *string  `json:"provider,omitempty"`
}

type BenefitsEducation struct {
	Methods   []string `json:"methods,omitempty"`
	Frequency *string  `json:"frequency,omitempty"`
}

type DataAnalytics struct {
	TrackMetrics   *bool    `json:"trackMetrics,omitempty"`
	MetricsTracked []string `json:"metricsTracked,omitempty"`
}

type DiversityInclusion struct {
	HasInitiatives         *bool    `json:"hasDIInitiatives,omitempty"`
	BenefitsConsideredInDI *bool    `json:"benefitsConsideredInDI,omitempty"`
	SpecificPrograms       []string `json:"specificPrograms,omitempty"`
}
