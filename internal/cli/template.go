package cli

const usageText = `NexStore

Usage:
  nexstore [OPTIONS] COMMAND

Options:
  --version        Show version information
  --config PATH    Path to config file (default: nexstore.yaml)
  --db PATH        Path to local database (overrides config)

Commands:
  today                   Show hot and popular apps
  apps [category]         List apps, optionally filtered by category
  search <term>           Search apps by name, developer or description
  top [n]                 Show top rated apps (default: 10)
  badge <key>             Show apps carrying a badge section
  download <id>           Show the download link for an app
  register                Register new account
  login                   Login to an existing account
  logout                  Close the current session
  status                  Show session status
  reset-password          Change the password of the current account
  theme [name]            Show or change the color theme
  admin                   Open the admin console (PIN protected)

Examples:
  nexstore today
  nexstore apps games
  nexstore search tube
  nexstore badge trending
  nexstore download youtube
  nexstore --db /tmp/store.db admin
`

const appListTemplate = `
=== {{ .Title }} ===

{{- if eq (len .Apps) 0 }}

No apps to show.
{{ else }}

{{- range .Apps }}
- {{ .Name }}{{ if .IsHot }} [hot]{{ end }}
   ID:        {{ .ID }}
   Developer: {{ .Developer }}
   Category:  {{ .Category }}
   Rating:    {{ printf "%.1f" .Rating }}
   {{- if .Badges }}
   Badges:    {{ range .Badges }}{{ . }} {{ end }}
   {{- end }}

{{- end }}
{{- end }}
`

const appDetailsTemplate = `
=== App Details ===

Name:        {{ .Name }}
ID:          {{ .ID }}
Developer:   {{ .Developer }}
Category:    {{ .Category }}
Rating:      {{ printf "%.1f" .Rating }}
{{- if .Description }}
Description: {{ .Description }}
{{- end }}
{{- if .Badges }}
Badges:      {{ range .Badges }}{{ . }} {{ end }}
{{- end }}
{{- if .DownloadURL }}
Download:    {{ .DownloadURL }}
{{- else }}
Download:    no link available
{{- end }}
`

const usersListTemplate = `
=== Registered Users ===

{{- if eq (len .) 0 }}

No users registered.
{{ else }}

{{- range . }}
- {{ .Username }}{{ if .IsBanned }} [banned]{{ end }}
   ID:    {{ .ID }}
   Email: {{ .Email }}
   Since: {{ .CreatedAt.Format "2006-01-02" }}

{{- end }}
{{- end }}
`

const adminHelpText = `
Admin commands:
  list                    List all apps
  add                     Add a new app (interactive)
  edit <id>               Edit app fields (empty input keeps current)
  remove <id>             Remove an app
  rating <id> <value>     Set app rating (1.0 - 5.0)
  bump <id> up|down       Adjust rating by 0.5
  badges <id> [k1,k2]     Replace app badges (no keys clears them)
  badge-add <id> <key>    Add a single badge
  users                   List registered users
  ban <username>          Ban a user
  unban <username>        Lift a ban
  help                    Show this help
  exit                    Leave the admin console
`
