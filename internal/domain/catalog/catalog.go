// Package catalog contiene la lista fija y versionada de permisos que se siembra al arrancar.
package catalog

import "github.com/jhoicas/vendor-management/internal/domain/entity"

// Version se incrementa cada vez que cambia la lista.
const Version = 2

// Codenames usados por el gate en las rutas.
const (
	UpdateVendorRecord             = "update_vendor_record"
	DeleteVendorRecord             = "delete_vendor_record"
	ViewVendorRecord               = "view_vendor_record"
	AddVendorProductRecord         = "add_vendor_product_record"
	UpdateVendorProductRecord      = "update_vendor_product_record"
	DeleteVendorProductRecord      = "delete_vendor_product_record"
	ViewVendorProductRecord        = "view_vendor_product_record"
	CanGenerateVendorProductReport = "can_generate_vendor_product_report"
	AssignUserPermission           = "assign_user_permission"
	ManagePermissionRecord         = "manage_permission_record"
)

// Entry una fila del catálogo.
type Entry struct {
	Codename    string
	Name        string
	Category    string
	Description string
}

var vendorManagement = []Entry{
	{UpdateVendorRecord, "Update vendor record", entity.CategoryVendorManagement, "Permission to allow users to update vendor record"},
	{DeleteVendorRecord, "Delete vendor record", entity.CategoryVendorManagement, "Permission to allow users to delete vendor record"},
	{ViewVendorRecord, "View vendor record", entity.CategoryVendorManagement, "Permission to allow users to view vendor record"},
}

var productManagement = []Entry{
	{AddVendorProductRecord, "Add vendor product record", entity.CategoryProductManagement, "Permission to allow users to add vendor product record"},
	{UpdateVendorProductRecord, "Update vendor product record", entity.CategoryProductManagement, "Permission to allow users to update vendor product record"},
	{DeleteVendorProductRecord, "Delete vendor product record", entity.CategoryProductManagement, "Permission to allow users to delete vendor product record"},
	{ViewVendorProductRecord, "View vendor product record", entity.CategoryProductManagement, "Permission to allow users to view vendor product record"},
	{CanGenerateVendorProductReport, "Can generate vendor product report", entity.CategoryProductManagement, "Permission to allow users to generate vendor product report"},
}

// v2: grupo de administración de permisos.
var manageUserPermissions = []Entry{
	{AssignUserPermission, "Assign user permission", entity.CategoryManageUserPermissions, "Permission to allow users to grant or revoke permissions of other users"},
	{ManagePermissionRecord, "Manage permission record", entity.CategoryManageUserPermissions, "Permission to allow users to create, update and delete permission records"},
}

// Entries devuelve una copia del catálogo completo, en orden estable.
func Entries() []Entry {
	out := make([]Entry, 0, len(vendorManagement)+len(productManagement)+len(manageUserPermissions))
	out = append(out, vendorManagement...)
	out = append(out, productManagement...)
	out = append(out, manageUserPermissions...)
	return out
}

// Lookup busca una entrada por codename.
func Lookup(codename string) (Entry, bool) {
	for _, e := range Entries() {
		if e.Codename == codename {
			return e, true
		}
	}
	return Entry{}, false
}
