package testbackend

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (record, bool) {
	rec := record{}
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return rec, true
}

func queryInt(r *http.Request, name string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil {
		return v
	}
	return def
}

func page(items []record, pageIdx, size int) []record {
	if size <= 0 {
		size = len(items)
	}
	start := pageIdx * size
	if start >= len(items) || start < 0 {
		return []record{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

func (b *Backend) getHandler(c *collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := c.get(pathID(r))
		if !ok {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (b *Backend) deleteHandler(c *collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.remove(pathID(r)) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listPagedHandler serves the zero-based {content, number, size, totalElements, totalPages} shape
func (b *Backend) listPagedHandler(c *collection, nameField string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		all := c.list(func(rec record) bool { return nameMatches(rec, nameField, q) })
		pageIdx := queryInt(r, "page", 0)
		size := queryInt(r, "size", 50)

		totalPages := 0
		if size > 0 {
			totalPages = int(math.Ceil(float64(len(all)) / float64(size)))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"content":       page(all, pageIdx, size),
			"number":        pageIdx,
			"size":          size,
			"totalElements": len(all),
			"totalPages":    totalPages,
		})
	}
}

// Document types

func (b *Backend) listDocTypesHandler(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dept := pathID(r)
		writeJSON(w, http.StatusOK, b.docTypes.list(func(rec record) bool {
			return toInt64(rec["departmentId"]) == dept && str(rec["status"]) == status
		}))
	}
}

func (b *Backend) createDocTypeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		if str(rec["name"]) == "" {
			writeError(w, http.StatusBadRequest, "Name is required")
			return
		}
		dept := toInt64(rec["departmentId"])
		if len(b.docTypes.list(func(o record) bool {
			return toInt64(o["departmentId"]) == dept && str(o["name"]) == str(rec["name"])
		})) > 0 {
			writeError(w, http.StatusConflict, "Document type name already exists in this department")
			return
		}
		now := time.Now().UTC().Format(time.RFC3339)
		delete(rec, "id")
		rec["status"] = "ACTIVE"
		rec["createdAt"] = now
		rec["updatedAt"] = now
		writeJSON(w, http.StatusCreated, b.docTypes.insert(rec))
	}
}

func (b *Backend) updateDocTypeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		out, found := b.docTypes.modify(pathID(r), func(rec record) {
			created, status := rec["createdAt"], rec["status"]
			for k := range rec {
				delete(rec, k)
			}
			for k, v := range in {
				rec[k] = v
			}
			rec["createdAt"] = created
			if rec["status"] == nil {
				rec["status"] = status
			}
			rec["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
		})
		if !found {
			writeError(w, http.StatusNotFound, "Document type not found")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (b *Backend) setDocTypeStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, found := b.docTypes.modify(pathID(r), func(rec record) { rec["status"] = status }); !found {
			writeError(w, http.StatusNotFound, "Document type not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (b *Backend) softDeleteDocTypeHandler() http.HandlerFunc {
	return b.setDocTypeStatus("INACTIVE")
}

func (b *Backend) restoreDocTypeHandler() http.HandlerFunc {
	return b.setDocTypeStatus("ACTIVE")
}

func (b *Backend) hardDeleteDocTypeHandler() http.HandlerFunc {
	return b.deleteHandler(b.docTypes)
}

func (b *Backend) activeDocTypesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []record{}
		for _, dt := range b.docTypes.list(func(rec record) bool { return str(rec["status"]) == "ACTIVE" }) {
			fields := []record{}
			if raw, ok := dt["indexingFields"].([]any); ok {
				for _, f := range raw {
					field, ok := f.(map[string]any)
					if !ok || field["visible"] != true {
						continue
					}
					fields = append(fields, record{"name": field["name"], "displayName": field["displayName"]})
				}
			}
			out = append(out, record{
				"id":                  dt["id"],
				"name":                dt["name"],
				"fieldsVisibleToUser": fields,
				"folderTemplate":      str(dt["folderTemplate"]),
				"fileTemplate":        str(dt["fileTemplate"]),
				"exportFormat":        str(dt["exportFormat"]),
				"colorFormat":         str(dt["colorFormat"]),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Batches

func (b *Backend) listBatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		pageNum := queryInt(r, "page", 1)
		size := queryInt(r, "size", 20)

		all := b.batches.list(func(rec record) bool { return nameMatches(rec, "name", q) })
		items := []record{}
		for _, rec := range page(all, pageNum-1, size) {
			items = append(items, record{"id": rec["id"], "name": rec["name"], "departmentName": rec["departmentName"]})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items":    items,
			"total":    len(all),
			"page":     pageNum,
			"pageSize": size,
		})
	}
}

// saveBatchHandler turns a create/update request into the stored batch shape
func (b *Backend) saveBatchHandler(update bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		if str(in["name"]) == "" {
			writeError(w, http.StatusBadRequest, "Name is required")
			return
		}

		batch := record{}
		for _, k := range []string{"departmentName", "name", "namingFormula", "expectedScanTimeSec", "workflow", "qualityPercentage", "autoImportPath"} {
			batch[k] = in[k]
		}
		batch["autoProcessImported"] = in["autoProcessImported"] == true
		batch["separationMethod"] = "NONE"
		if sep, ok := in["separation"].(map[string]any); ok {
			if m := str(sep["method"]); m != "" {
				batch["separationMethod"] = m
			}
			batch["separationInfo"] = sep["info"]
		}
		selected := []record{}
		if ids, ok := in["selectedDocumentTypeIds"].([]any); ok {
			for _, id := range ids {
				if dt, found := b.docTypes.get(toInt64(id)); found {
					selected = append(selected, record{"id": dt["id"], "name": dt["name"]})
				}
			}
		}
		batch["selectedDocumentTypes"] = selected

		if !update {
			writeJSON(w, http.StatusCreated, b.batches.insert(batch))
			return
		}
		out, found := b.batches.modify(pathID(r), func(rec record) {
			for k := range rec {
				delete(rec, k)
			}
			for k, v := range batch {
				rec[k] = v
			}
		})
		if !found {
			writeError(w, http.StatusNotFound, "Batch not found")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Groups

func (b *Backend) allBatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []record{}
		for _, rec := range b.batches.list(nil) {
			out = append(out, record{"batchId": rec["id"], "batchName": rec["name"], "scan": false, "index": false, "quality": false})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (b *Backend) createGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		if str(in["name"]) == "" {
			writeError(w, http.StatusBadRequest, "Group name is required")
			return
		}
		if len(b.groups.list(func(o record) bool { return str(o["name"]) == str(in["name"]) })) > 0 {
			writeError(w, http.StatusConflict, "Group name already exists")
			return
		}
		if in["batchPermissions"] == nil {
			in["batchPermissions"] = []any{}
		}
		delete(in, "id")
		writeJSON(w, http.StatusCreated, b.groups.insert(in))
	}
}

func (b *Backend) updateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		out, found := b.groups.modify(pathID(r), func(rec record) {
			if name := str(in["name"]); name != "" {
				rec["name"] = name
			}
			if perms, ok := in["batchPermissions"]; ok && perms != nil {
				rec["batchPermissions"] = perms
			}
		})
		if !found {
			writeError(w, http.StatusNotFound, "Group not found")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Users

func (b *Backend) groupNames(ids any) []string {
	names := []string{}
	list, _ := ids.([]any)
	for _, id := range list {
		if g, ok := b.groups.get(toInt64(id)); ok {
			names = append(names, str(g["name"]))
		}
	}
	return names
}

func (b *Backend) createUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		username, password := str(in["username"]), str(in["password"])
		if username == "" || password == "" {
			writeError(w, http.StatusBadRequest, "Username and password are required")
			return
		}
		if len(b.users.list(func(o record) bool { return str(o["username"]) == username })) > 0 {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}

		user := record{
			"username":           username,
			"fullName":           in["fullName"],
			"dailyTargetMinutes": in["dailyTargetMinutes"],
			"roles":              in["roles"],
			"groups":             b.groupNames(in["groupIds"]),
		}
		if user["roles"] == nil {
			user["roles"] = []any{}
		}
		writeJSON(w, http.StatusCreated, b.users.insert(user))
	}
}

func (b *Backend) updateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		var groups []string
		if ids, ok := in["groupIds"]; ok && ids != nil {
			groups = b.groupNames(ids)
		}
		out, found := b.users.modify(pathID(r), func(rec record) {
			for _, k := range []string{"fullName", "dailyTargetMinutes", "roles"} {
				if v, ok := in[k]; ok && v != nil {
					rec[k] = v
				}
			}
			if groups != nil {
				rec["groups"] = groups
			}
		})
		if !found {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
