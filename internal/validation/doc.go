// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator with the dashboard's custom tags
// and converts failures into the API's VALIDATION_ERROR format.
//
// # Custom Tags
//
//	filter_name     month, visitor_type, weekend, browser, os, region,
//	                traffic_type, page_type (plus the aliases visitor, traffic)
//	filter_scope    all, kpi, graph (and kpi_only, graph_only)
//	weekend_choice  all, weekday, weekend (and true, false)
//
// # Usage
//
//	type FilterRequest struct {
//	    Name   string   `json:"name" validate:"required,filter_name"`
//	    Scope  string   `json:"scope" validate:"omitempty,filter_scope"`
//	    Values []string `json:"values" validate:"max=64,dive,required,max=64"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Field names in messages come from json tags and include the path into
// nested slices, e.g. "filters[1].scope must be one of: all, kpi, graph".
//
// # Thread Safety
//
// GetValidator initializes the validator once with sync.Once. The validator
// caches struct metadata and is safe for concurrent use.
package validation
