package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "eSchool Portal", "description": "Browser portal over the school administration REST backend.", "version": "1.0.0"},
    "basePath": "/",
    "schemes": ["http"],
    "tags": [{"name": "Authentication"}, {"name": "Dashboard"}, {"name": "Management", "description": "Managed collections of the office roles"}, {"name": "Student", "description": "Student self-service"}, {"name": "Teacher", "description": "Teacher self-service"}, {"name": "Activities"}, {"name": "Settings"}, {"name": "Profile"}, {"name": "Observability"}],
    "paths": {
        "/health": {"get": {"tags": ["Observability"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["Observability"], "summary": "Readiness probe", "responses": {"200": {"description": "Ready"}}}},
        "/metrics": {"get": {"tags": ["Observability"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}},
        "/api/metrics": {"get": {"tags": ["Observability"], "summary": "Aggregated request, upstream and cache counters", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/login": {"post": {"tags": ["Authentication"], "summary": "Log in against the school backend", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}]}},
        "/logout": {"post": {"tags": ["Authentication"], "summary": "Clear the portal session", "responses": {"204": {"description": "Logged out"}}}},
        "/api/session": {"get": {"tags": ["Authentication"], "summary": "Describe the current session", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/profile": {"get": {"tags": ["Profile"], "summary": "Show the logged-in user's profile", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}, "post": {"tags": ["Profile"], "summary": "Update the logged-in user's profile", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileUpdate"}}]}},
        "/profile/draft": {"post": {"tags": ["Profile"], "summary": "Keep an unfinished profile edit", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileUpdate"}}]}},
        "/settings": {"get": {"tags": ["Settings"], "summary": "Current UI settings", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}, "put": {"tags": ["Settings"], "summary": "Store UI settings", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UISettings"}}]}},
        "/settings/reset": {"post": {"tags": ["Settings"], "summary": "Restore default UI settings", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Role landing dashboard", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/vice/discipline": {"get": {"tags": ["Activities"], "summary": "Discipline report", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/zone/training": {"get": {"tags": ["Activities"], "summary": "Capacity building trainings", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}]}},
        "/zone/schools/infrastructure": {"get": {"tags": ["Activities"], "summary": "School infrastructure snapshot", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "wereda", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}},
        "/student": {"get": {"tags": ["Student"], "summary": "Student landing page", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}, {"name": "academic_year", "in": "query", "type": "string"}]}},
        "/student/grades": {"get": {"tags": ["Student"], "summary": "Grades with GPA", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}, {"name": "academic_year", "in": "query", "type": "string"}]}},
        "/student/attendance": {"get": {"tags": ["Student"], "summary": "Attendance with summary", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}, {"name": "academic_year", "in": "query", "type": "string"}]}},
        "/student/subjects": {"get": {"tags": ["Student"], "summary": "Enrolled subjects", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}, {"name": "academic_year", "in": "query", "type": "string"}]}},
        "/student/library": {"get": {"tags": ["Student"], "summary": "Borrowed books", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}, {"name": "academic_year", "in": "query", "type": "string"}]}},
        "/student/summary": {"get": {"tags": ["Student"], "summary": "Academic summary", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}, {"name": "academic_year", "in": "query", "type": "string"}]}},
        "/student/grades/transcript.pdf": {"get": {"tags": ["Student"], "summary": "Grades report as PDF", "produces": ["application/pdf"], "responses": {"200": {"description": "PDF file"}}}},
        "/student/profile": {"get": {"tags": ["Student"], "summary": "The logged-in student's record", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}, "patch": {"tags": ["Student"], "summary": "Patch the logged-in student's record", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/teacher": {"get": {"tags": ["Teacher"], "summary": "Teacher landing page", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/teacher/classes": {"get": {"tags": ["Teacher"], "summary": "Sections the teacher teaches", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/teacher/students": {"get": {"tags": ["Teacher"], "summary": "Students taught by the teacher", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "section", "in": "query", "type": "string"}]}},
        "/teacher/attendance": {"get": {"tags": ["Teacher"], "summary": "Recorded attendance", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "date_from", "in": "query", "type": "string"}, {"name": "date_to", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "section", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}]}, "post": {"tags": ["Teacher"], "summary": "Submit a bulk attendance sheet", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}]}},
        "/teacher/attendance/mark": {"get": {"tags": ["Teacher"], "summary": "Attendance sheet with everyone present", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "section", "in": "query", "type": "string"}]}},
        "/teacher/grades": {"get": {"tags": ["Teacher"], "summary": "Grades the teacher entered", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "semester", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "section", "in": "query", "type": "string"}, {"name": "grade_type", "in": "query", "type": "string"}, {"name": "student", "in": "query", "type": "string"}]}, "post": {"tags": ["Teacher"], "summary": "Add a grade, or replace the grade whose id is in the body", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherGrade"}}, {"name": "semester", "in": "query", "type": "string"}, {"name": "subject", "in": "query", "type": "string"}, {"name": "section", "in": "query", "type": "string"}, {"name": "grade_type", "in": "query", "type": "string"}, {"name": "student", "in": "query", "type": "string"}]}},
        "/teacher/grades/new": {"get": {"tags": ["Teacher"], "summary": "Form for a new grade, or for the grade with the given id", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "query", "type": "string"}]}},
        "/teacher/grades/bulk": {"get": {"tags": ["Teacher"], "summary": "One assessment for every student of a section", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "section", "in": "query", "type": "string"}]}, "post": {"tags": ["Teacher"], "summary": "Record one assessment for many students", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkGradeRequest"}}]}},
        "/teacher/schedule": {"get": {"tags": ["Teacher"], "summary": "Weekly timetable from Monday to Sunday", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/teacher/profile": {"get": {"tags": ["Teacher"], "summary": "Teacher record of the logged-in user", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/record/students": {"get": {"tags": ["Management"], "summary": "List students", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to students", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/record/students/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/record/students/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/record/students/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/record/students/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/record/students/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/record/students/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/director/staff": {"get": {"tags": ["Management"], "summary": "List staff", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to staff", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/director/staff/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/director/staff/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/director/staff/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/director/staff/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/director/staff/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/director/staff/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/wereda/schools": {"get": {"tags": ["Management"], "summary": "List schools", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to schools", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/wereda/schools/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/wereda/schools/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/wereda/schools/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/wereda/schools/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/wereda/schools/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/wereda/schools/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/wereda/schools/directors": {"get": {"tags": ["Management"], "summary": "List school directors", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to school directors", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/wereda/schools/directors/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/wereda/schools/directors/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/wereda/schools/directors/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/wereda/schools/directors/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/wereda/schools/directors/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/wereda/schools/directors/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/wereda/supervisors": {"get": {"tags": ["Management"], "summary": "List supervisors", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to supervisors", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/wereda/supervisors/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/wereda/supervisors/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/wereda/supervisors/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/wereda/supervisors/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/wereda/supervisors/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/wereda/supervisors/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/zone/wereda/manage": {"get": {"tags": ["Management"], "summary": "List weredas", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to weredas", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/zone/wereda/manage/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/zone/wereda/manage/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/zone/wereda/manage/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/zone/wereda/manage/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/zone/wereda/manage/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/zone/wereda/manage/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/zone/awm": {"get": {"tags": ["Management"], "summary": "List wereda managers", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort", "in": "query", "type": "string"}, {"name": "order", "in": "query", "type": "string"}]}, "post": {"tags": ["Management"], "summary": "Add to wereda managers", "produces": ["application/json", "text/html"], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}]}},
        "/zone/awm/new": {"get": {"tags": ["Management"], "summary": "Open a blank add form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/zone/awm/export": {"get": {"tags": ["Management"], "summary": "Backend CSV export", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
        "/zone/awm/download": {"get": {"tags": ["Management"], "summary": "Filtered list as CSV or XLSX", "parameters": [{"name": "format", "in": "query", "type": "string"}], "responses": {"200": {"description": "File"}}}},
        "/zone/awm/import": {"post": {"tags": ["Management"], "summary": "Import a CSV file", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}]}},
        "/zone/awm/{id}": {"get": {"tags": ["Management"], "summary": "Open a record read-only", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "put": {"tags": ["Management"], "summary": "Submit the edit form", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}, "delete": {"tags": ["Management"], "summary": "Delete after confirmation", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "confirmed", "in": "query", "type": "boolean"}]}},
        "/zone/awm/{id}/edit": {"get": {"tags": ["Management"], "summary": "Open a record for editing", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}},
        "/director/staff/{id}/toggle": {"post": {"tags": ["Management"], "summary": "Flip an employee between active and inactive", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}]}}
    },
    "definitions": {
        "LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}, "required": ["email", "password"]},
        "ProfileUpdate": {"type": "object", "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}}},
        "UISettings": {"type": "object", "properties": {"theme": {"type": "string"}, "language": {"type": "string"}, "sidebar_collapsed": {"type": "boolean"}, "rows_per_page": {"type": "integer"}, "email_alerts": {"type": "boolean"}}},
        "AttendanceEntry": {"type": "object", "properties": {"student": {"type": "string"}, "section": {"type": "string"}, "subject": {"type": "string"}, "date": {"type": "string"}, "status": {"type": "string"}}, "required": ["student", "status"]},
        "TeacherGrade": {"type": "object", "properties": {"id": {"type": "string"}, "student": {"type": "string"}, "subject": {"type": "string"}, "section": {"type": "string"}, "semester": {"type": "string"}, "grade_type": {"type": "string", "enum": ["assignment", "quiz", "midterm", "final", "project"]}, "score": {"type": "number"}, "full_mark": {"type": "number"}, "academic_year": {"type": "string"}}, "required": ["student", "subject", "section", "grade_type", "full_mark"]},
        "BulkGradeRequest": {"type": "object", "properties": {"subject": {"type": "string"}, "section": {"type": "string"}, "semester": {"type": "string"}, "grade_type": {"type": "string"}, "full_mark": {"type": "number"}, "academic_year": {"type": "string"}, "idempotency_key": {"type": "string"}, "grades": {"type": "array", "items": {"$ref": "#/definitions/TeacherGrade"}}}},
        "MarkAttendanceRequest": {"type": "object", "properties": {"section": {"type": "string"}, "subject": {"type": "string"}, "date": {"type": "string"}, "idempotency_key": {"type": "string"}, "entries": {"type": "array", "items": {"$ref": "#/definitions/AttendanceEntry"}}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}, "total_pages": {"type": "integer"}}},
        "Flash": {"type": "object", "properties": {"kind": {"type": "string"}, "message": {"type": "string"}, "dismiss_after_ms": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}, "fields": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "flash": {"$ref": "#/definitions/Flash"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
