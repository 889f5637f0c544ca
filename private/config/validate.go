// Copyright 2026 The topogen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// CheckTags validates the `validate` struct tags of s. Every failing field is
// reported as kind joined with the field's snake_case path, the offending
// value and the violated constraint. All failures are returned together as a
// serrors.List.
func CheckTags(s any, kind error) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return serrors.Wrap("validating struct", err)
	}
	errs := make(serrors.List, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, serrors.JoinNoStack(kind, nil,
			"field", FieldPath(fe.StructNamespace()),
			"value", fe.Value(),
			"constraint", constraint(fe),
		))
	}
	return errs.ToError()
}

// FieldPath converts a Go struct namespace such as "Config.OSPF.HelloInterval"
// into the dotted TOML key "ospf.hello_interval". The root type is dropped.
func FieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strcase.ToSnake(p)
	}
	return strings.Join(parts, ".")
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
