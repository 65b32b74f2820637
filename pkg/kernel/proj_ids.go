package kernel

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (c CompanyID) String() string     { return string(c) }
func (c CompanyID) IsEmpty() bool      { return string(c) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type SavedJobID string

func NewSavedJobID(id string) SavedJobID { return SavedJobID(id) }
func (s SavedJobID) String() string      { return string(s) }
func (s SavedJobID) IsEmpty() bool       { return string(s) == "" }

type FileUploadID string

func NewFileUploadID(id string) FileUploadID { return FileUploadID(id) }
func (f FileUploadID) String() string        { return string(f) }
func (f FileUploadID) IsEmpty() bool         { return string(f) == "" }
