package navigation

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Unauthenticated entry point (login)
	RouteHome = "/"

	// Admin Routes
	RouteAdmin                = "/admin"
	RouteAdminDocTypes        = "/admin/document-types"
	RouteAdminDocTypesRestore = "/admin/document-types/restore"
	RouteAdminBatches         = "/admin/batches"
	RouteAdminUsersAccess     = "/admin/users-access"

	// Role landing routes
	RouteScanner  = "/scanner"
	RouteReviewer = "/reviewer"
	RouteViewer   = "/viewer"
)

// Routes lists every known route
var Routes = []string{
	RouteHome,
	RouteAdmin,
	RouteAdminDocTypes,
	RouteAdminDocTypesRestore,
	RouteAdminBatches,
	RouteAdminUsersAccess,
	RouteScanner,
	RouteReviewer,
	RouteViewer,
}
