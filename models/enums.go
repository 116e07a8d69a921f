package models

import "fmt"

// ProductionStage is the position of an order in the fixed manufacturing pipeline
type ProductionStage string

const (
	StageCutting   ProductionStage = "cutting"
	StageStitching ProductionStage = "stitching"
	StageLasting   ProductionStage = "lasting"
	StageFinishing ProductionStage = "finishing"
	StagePacking   ProductionStage = "packing"
	StageCompleted ProductionStage = "completed"
)

// AllProductionStages returns every stage in pipeline order
func AllProductionStages() []ProductionStage {
	return []ProductionStage{
		StageCutting,
		StageStitching,
		StageLasting,
		StageFinishing,
		StagePacking,
		StageCompleted,
	}
}

// Valid reports whether s is one of the defined stages
func (s ProductionStage) Valid() bool {
	for _, stage := range AllProductionStages() {
		if s == stage {
			return true
		}
	}
	return false
}

// ParseProductionStage converts raw input into a ProductionStage
func ParseProductionStage(raw string) (ProductionStage, error) {
	stage := ProductionStage(raw)
	if !stage.Valid() {
		return "", fmt.Errorf("unknown production stage %q", raw)
	}
	return stage, nil
}

// OrderStatus is the health of an order independent of its pipeline position
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusDelayed    OrderStatus = "delayed"
)

// AllOrderStatuses returns every order status
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusInProgress, StatusCompleted, StatusDelayed}
}

// ActiveOrderStatuses are the statuses counted as work in the pipeline
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusInProgress}
}

// Valid reports whether s is one of the defined statuses
func (s OrderStatus) Valid() bool {
	for _, status := range AllOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

// QCStatus is the outcome of a quality-control inspection
type QCStatus string

const (
	QCPending QCStatus = "pending"
	QCPassed  QCStatus = "passed"
	QCFailed  QCStatus = "failed"
)

// AllQCStatuses returns every QC status
func AllQCStatuses() []QCStatus {
	return []QCStatus{QCPassed, QCPending, QCFailed}
}

func (s QCStatus) Valid() bool {
	for _, status := range AllQCStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ParseQCStatus converts raw input into a QCStatus; empty input means pending
func ParseQCStatus(raw string) (QCStatus, error) {
	if raw == "" {
		return QCPending, nil
	}
	status := QCStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown qc status %q", raw)
	}
	return status, nil
}

// DocumentType classifies an uploaded artifact
type DocumentType string

const (
	DocumentPurchaseOrder    DocumentType = "purchase_order"
	DocumentBOM              DocumentType = "bom"
	DocumentQCReport         DocumentType = "qc_report"
	DocumentDispatchDocument DocumentType = "dispatch_document"
)

// AllDocumentTypes returns every document type
func AllDocumentTypes() []DocumentType {
	return []DocumentType{DocumentPurchaseOrder, DocumentBOM, DocumentQCReport, DocumentDispatchDocument}
}

func (t DocumentType) Valid() bool {
	for _, docType := range AllDocumentTypes() {
		if t == docType {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType
func ParseDocumentType(raw string) (DocumentType, error) {
	docType := DocumentType(raw)
	if !docType.Valid() {
		return "", fmt.Errorf("unknown document type %q", raw)
	}
	return docType, nil
}

// UserRole is the team a user belongs to
type UserRole string

const (
	RoleMerchandiser UserRole = "merchandiser"
	RoleFactoryTeam  UserRole = "factory_team"
	RoleQCTeam       UserRole = "qc_team"
	RoleManagement   UserRole = "management"
)

// AllUserRoles returns every role
func AllUserRoles() []UserRole {
	return []UserRole{RoleMerchandiser, RoleFactoryTeam, RoleQCTeam, RoleManagement}
}

func (r UserRole) Valid() bool {
	for _, role := range AllUserRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole; empty input means merchandiser
func ParseUserRole(raw string) (UserRole, error) {
	if raw == "" {
		return RoleMerchandiser, nil
	}
	role := UserRole(raw)
	if !role.Valid() {
		return "", fmt.Errorf("unknown user role %q", raw)
	}
	return role, nil
}
