package controllers

import (
	"net/http"

	"github.com/audirhq/audir-backend/api/responses"
	"github.com/audirhq/audir-backend/api/validators"
	"github.com/audirhq/audir-backend/internal/reference"
	"github.com/audirhq/audir-backend/pkg/logger"
)

type refListFunc func(r *http.Request, tenantID int64) ([]reference.RefDTO, error)
type refCreateFunc func(r *http.Request, tenantID int64, input reference.CreateRefInput) (*reference.RefDTO, error)
type refDeleteFunc func(r *http.Request, tenantID, id int64) error

func refList(list refListFunc, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := list(r, actor.TenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

func refCreate(create refCreateFunc, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input reference.CreateRefInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := create(r, actor.TenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}

func refDelete(paramName string, del refDeleteFunc, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := idParam(r, paramName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := del(r, actor.TenantID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// DepartmentsList returns the tenant's departments.
func DepartmentsList(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refList(func(r *http.Request, tenantID int64) ([]reference.RefDTO, error) {
		return svc.ListDepartments(r.Context(), tenantID)
	}, logg)
}

// DepartmentsCreate adds a department to the tenant.
func DepartmentsCreate(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refCreate(func(r *http.Request, tenantID int64, input reference.CreateRefInput) (*reference.RefDTO, error) {
		return svc.CreateDepartment(r.Context(), tenantID, input)
	}, logg)
}

// DepartmentsDelete removes a tenant-owned department.
func DepartmentsDelete(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refDelete("departmentID", func(r *http.Request, tenantID, id int64) error {
		return svc.DeleteDepartment(r.Context(), tenantID, id)
	}, logg)
}

// SitesList returns the tenant's sites.
func SitesList(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refList(func(r *http.Request, tenantID int64) ([]reference.RefDTO, error) {
		return svc.ListSites(r.Context(), tenantID)
	}, logg)
}

// SitesCreate adds a site to the tenant.
func SitesCreate(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refCreate(func(r *http.Request, tenantID int64, input reference.CreateRefInput) (*reference.RefDTO, error) {
		return svc.CreateSite(r.Context(), tenantID, input)
	}, logg)
}

// SitesDelete removes a tenant-owned site.
func SitesDelete(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refDelete("siteID", func(r *http.Request, tenantID, id int64) error {
		return svc.DeleteSite(r.Context(), tenantID, id)
	}, logg)
}

// RegionsList returns the tenant's regions.
func RegionsList(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refList(func(r *http.Request, tenantID int64) ([]reference.RefDTO, error) {
		return svc.ListRegions(r.Context(), tenantID)
	}, logg)
}

// RegionsCreate adds a region to the tenant.
func RegionsCreate(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refCreate(func(r *http.Request, tenantID int64, input reference.CreateRefInput) (*reference.RefDTO, error) {
		return svc.CreateRegion(r.Context(), tenantID, input)
	}, logg)
}

// RegionsDelete removes a tenant-owned region.
func RegionsDelete(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return refDelete("regionID", func(r *http.Request, tenantID, id int64) error {
		return svc.DeleteRegion(r.Context(), tenantID, id)
	}, logg)
}
