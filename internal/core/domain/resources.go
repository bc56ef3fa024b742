package domain

// The backend owns every resource schema. The request payloads below mirror
// its create schemas so callers get field names right; nothing here is
// validated before it is sent.

type RoomCreate struct {
	BuildingUnit   string `json:"building_unit"`
	RoomNumber     string `json:"room_number"`
	Status         string `json:"status,omitempty"`
	DeliveryStatus string `json:"delivery_status,omitempty"`
	ContractStatus string `json:"contract_status,omitempty"`
	LetterStatus   string `json:"letter_status,omitempty"`
	PreLeakage     string `json:"pre_leakage,omitempty"`
}

type QualityIssueCreate struct {
	RoomID      int        `json:"room_id"`
	Description string     `json:"description"`
	IssueType   string     `json:"issue_type,omitempty"`
	Images      string     `json:"images,omitempty"`
	RecordDate  *Timestamp `json:"record_date,omitempty"`
}

type CommunicationCreate struct {
	RoomID              int        `json:"room_id"`
	Content             string     `json:"content"`
	CommunicationTime   *Timestamp `json:"communication_time,omitempty"`
	Feedback            string     `json:"feedback,omitempty"`
	CustomerDescription string     `json:"customer_description,omitempty"`
	Image               string     `json:"image,omitempty"`
}

type UserCreate struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

type RoomAssignmentCreate struct {
	UserID int `json:"user_id"`
	RoomID int `json:"room_id"`
}

// RoomStatusField names a per-field room status endpoint; the value is sent
// as a query parameter named after the field.
type RoomStatusField string

const (
	RoomDeliveryStatus       RoomStatusField = "delivery-status"
	RoomContractStatus       RoomStatusField = "contract-status"
	RoomLetterStatus         RoomStatusField = "letter-status"
	RoomPreLeakage           RoomStatusField = "pre-leakage"
	RoomExpectedDeliveryDate RoomStatusField = "expected-delivery-date"
)

// QueryParam returns the query parameter name the backend expects.
func (f RoomStatusField) QueryParam() string {
	switch f {
	case RoomDeliveryStatus:
		return "delivery_status"
	case RoomContractStatus:
		return "contract_status"
	case RoomLetterStatus:
		return "letter_status"
	case RoomPreLeakage:
		return "pre_leakage"
	case RoomExpectedDeliveryDate:
		return "expected_delivery_date"
	}
	return ""
}

// UploadedFile is the body of a successful POST /upload-image/.
type UploadedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
