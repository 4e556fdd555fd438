package testbackend

import (
	"net/http"
)

const (
	routeLogin        = "/api/auth/login"
	routeRegister     = "/api/auth/register"
	routeRefreshToken = "/api/auth/refresh-token"

	routeDocTypes           = "/api/document-types"
	routeDocTypesDepartment = "/api/document-types/department/{id:[0-9]+}"
	routeDocTypesDeleted    = "/api/document-types/department/{id:[0-9]+}/deleted"
	routeDocType            = "/api/document-types/{id:[0-9]+}"
	routeDocTypeRestore     = "/api/document-types/{id:[0-9]+}/restore"
	routeDocTypeHard        = "/api/document-types/{id:[0-9]+}/hard"
	routeActiveDocTypes     = "/api/user/document-types/active"

	routeBatches = "/api/batches"
	routeBatch   = "/api/batches/{id:[0-9]+}"

	routeGroups     = "/api/admin/access/groups"
	routeGroup      = "/api/admin/access/groups/{id:[0-9]+}"
	routeAllBatches = "/api/admin/access/groups/_all-batches"

	routeUsers = "/api/admin/access/users"
	routeUser  = "/api/admin/access/users/{id:[0-9]+}"

	// RouteProbe is a protected endpoint that echoes the caller, for gateway tests
	RouteProbe = "/api/probe"
	// RouteLoginLookalike contains the login path but is served as a protected route
	RouteLoginLookalike = "/api/reports/api/auth/login-history"
)

func (b *Backend) initRoutes() {
	open := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, b.RecoverMiddleware, b.LoggingMiddleware, b.RecordingMiddleware)
	}
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, b.RecoverMiddleware, b.LoggingMiddleware, b.RecordingMiddleware, b.RequireAuth)
	}

	b.router.HandleFunc(routeLogin, open(b.loginHandler())).Methods(http.MethodPost)
	b.router.HandleFunc(routeRegister, open(b.registerHandler())).Methods(http.MethodPost)
	b.router.HandleFunc(routeRefreshToken, open(b.refreshHandler())).Methods(http.MethodPost)

	b.router.HandleFunc(RouteProbe, protected(b.probeHandler())).Methods(http.MethodGet, http.MethodPost)
	b.router.HandleFunc(RouteLoginLookalike, protected(b.probeHandler())).Methods(http.MethodGet)

	b.router.HandleFunc(routeDocTypesDeleted, protected(b.listDocTypesHandler("INACTIVE"))).Methods(http.MethodGet)
	b.router.HandleFunc(routeDocTypesDepartment, protected(b.listDocTypesHandler("ACTIVE"))).Methods(http.MethodGet)
	b.router.HandleFunc(routeDocTypeRestore, protected(b.restoreDocTypeHandler())).Methods(http.MethodPost)
	b.router.HandleFunc(routeDocTypeHard, protected(b.hardDeleteDocTypeHandler())).Methods(http.MethodDelete)
	b.router.HandleFunc(routeDocType, protected(b.getHandler(b.docTypes))).Methods(http.MethodGet)
	b.router.HandleFunc(routeDocType, protected(b.updateDocTypeHandler())).Methods(http.MethodPut)
	b.router.HandleFunc(routeDocType, protected(b.softDeleteDocTypeHandler())).Methods(http.MethodDelete)
	b.router.HandleFunc(routeDocTypes, protected(b.createDocTypeHandler())).Methods(http.MethodPost)
	b.router.HandleFunc(routeActiveDocTypes, protected(b.activeDocTypesHandler())).Methods(http.MethodGet)

	b.router.HandleFunc(routeBatches, protected(b.listBatchesHandler())).Methods(http.MethodGet)
	b.router.HandleFunc(routeBatches, protected(b.saveBatchHandler(false))).Methods(http.MethodPost)
	b.router.HandleFunc(routeBatch, protected(b.getHandler(b.batches))).Methods(http.MethodGet)
	b.router.HandleFunc(routeBatch, protected(b.saveBatchHandler(true))).Methods(http.MethodPut)
	b.router.HandleFunc(routeBatch, protected(b.deleteHandler(b.batches))).Methods(http.MethodDelete)

	b.router.HandleFunc(routeAllBatches, protected(b.allBatchesHandler())).Methods(http.MethodGet)
	b.router.HandleFunc(routeGroups, protected(b.listPagedHandler(b.groups, "name"))).Methods(http.MethodGet)
	b.router.HandleFunc(routeGroups, protected(b.createGroupHandler())).Methods(http.MethodPost)
	b.router.HandleFunc(routeGroup, protected(b.getHandler(b.groups))).Methods(http.MethodGet)
	b.router.HandleFunc(routeGroup, protected(b.updateGroupHandler())).Methods(http.MethodPut)
	b.router.HandleFunc(routeGroup, protected(b.deleteHandler(b.groups))).Methods(http.MethodDelete)

	b.router.HandleFunc(routeUsers, protected(b.listPagedHandler(b.users, "username"))).Methods(http.MethodGet)
	b.router.HandleFunc(routeUsers, protected(b.createUserHandler())).Methods(http.MethodPost)
	b.router.HandleFunc(routeUser, protected(b.getHandler(b.users))).Methods(http.MethodGet)
	b.router.HandleFunc(routeUser, protected(b.updateUserHandler())).Methods(http.MethodPut)
}
