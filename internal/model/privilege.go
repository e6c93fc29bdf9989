package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "import_order:review"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Partner & location lookup
	{Code: "partner:view", Name: "View Business Partner"},
	{Code: "location:view", Name: "View Location"},
	// Inventory
	{Code: "inventory:view", Name: "View Inventory"},
	// Import orders
	{Code: "import_order:view", Name: "View Import Order"},
	{Code: "import_order:create", Name: "Create Import Order"},
	{Code: "import_order:review", Name: "Review Import Order"},
	// Export orders
	{Code: "export_order:view", Name: "View Export Order"},
	{Code: "export_order:create", Name: "Create Export Order"},
	{Code: "export_order:review", Name: "Review Export Order"},
	// Ledgers
	{Code: "log:view", Name: "View Transaction & Action Logs"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// ManagerPrivilegeCodes are granted to the MANAGER role on seed.
var ManagerPrivilegeCodes = []string{
	"product:view", "product:create", "product:update", "product:delete",
	"partner:view", "location:view", "inventory:view",
	"import_order:view", "import_order:create", "import_order:review",
	"export_order:view", "export_order:create", "export_order:review",
	"log:view", "dashboard:view",
}

// StaffPrivilegeCodes are granted to the STAFF role on seed.
var StaffPrivilegeCodes = []string{
	"product:view", "partner:view", "location:view", "inventory:view",
	"import_order:view", "import_order:create",
	"export_order:view", "export_order:create",
	"dashboard:view",
}
