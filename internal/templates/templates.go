// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package templates renders the operator notification and the submitter
// confirmation emails of a form submission.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wneessen/tour-mailer/internal/forms"
)

//go:embed html/*.html
var templateFS embed.FS

// Brand holds the agency information that is printed in every email.
type Brand struct {
	Name    string
	Tagline string
	Phone   string
	Email   string
	Website string
}

// Detail is a title-cased form field as shown in the operator email.
type Detail struct {
	Label string
	Value string
}

type adminData struct {
	Brand       Brand
	Subject     string
	FormType    string
	Contact     forms.Contact
	Details     []Detail
	SubmittedAt string
}

type userData struct {
	Brand       Brand
	Subject     string
	FormType    string
	UserName    string
	SubmittedAt string
}

// Renderer renders the two emails of a submission. The output only depends
// on the arguments, so equal input always produces byte-identical documents.
type Renderer struct {
	brand Brand
	admin *template.Template
	user  *template.Template
}

// New parses the embedded templates.
func New(brand Brand) (*Renderer, error) {
	admin, err := template.ParseFS(templateFS, "html/layout.html", "html/admin.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin template: %w", err)
	}
	user, err := template.ParseFS(templateFS, "html/layout.html", "html/user.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse user template: %w", err)
	}
	return &Renderer{brand: brand, admin: admin, user: user}, nil
}

func (r *Renderer) Brand() Brand {
	return r.brand
}

// RenderAdmin renders the operator notification.
func (r *Renderer) RenderAdmin(formType string, submission forms.Submission, submittedAt string) (string, error) {
	contact := submission.Contact()
	fields := submission.Details()
	details := make([]Detail, 0, len(fields))
	for _, field := range fields {
		details = append(details, Detail{Label: TitleKey(field.Key), Value: field.Value})
	}

	data := adminData{
		Brand:       r.brand,
		Subject:     AdminSubject(formType, contact.Name),
		FormType:    formType,
		Contact:     contact,
		Details:     details,
		SubmittedAt: submittedAt,
	}
	return execute(r.admin, "admin.html", data)
}

// RenderUser renders the confirmation for the submitter.
func (r *Renderer) RenderUser(formType string, submission forms.Submission, userName, submittedAt string) (string, error) {
	if strings.TrimSpace(userName) == "" {
		userName = submission.Contact().Name
	}
	data := userData{
		Brand:       r.brand,
		Subject:     UserSubject(formType, r.brand.Name),
		FormType:    formType,
		UserName:    userName,
		SubmittedAt: submittedAt,
	}
	return execute(r.user, "user.html", data)
}

func AdminSubject(formType, name string) string {
	return fmt.Sprintf("New %s from %s", formType, strings.TrimSpace(name))
}

func UserSubject(formType, brandName string) string {
	return fmt.Sprintf("We received your %s - %s", formType, brandName)
}

// TitleKey turns a record key like "special_requests" into "Special Requests".
func TitleKey(key string) string {
	// cases.Caser is stateful, so every call gets its own
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(key, "_", " "))
}

func execute(tpl *template.Template, name string, data any) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := tpl.ExecuteTemplate(buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
