package site

// layoutTemplate wraps every page with the navigation bar and footer.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteName}}</title>
  <link rel="stylesheet" href="/static/site.css">
</head>
<body>
  <nav class="navbar">
    <div class="nav-inner">
      <a href="/" class="brand"><span class="brand-mark">SR</span><span class="brand-name">{{.SiteName}}</span></a>
      <button class="nav-toggle" id="nav-toggle" aria-label="Toggle navigation">&#9776;</button>
      <ul class="nav-links" id="nav-links">
        <li><a href="/"{{if eq .Path "/"}} class="active"{{end}}>Home</a></li>
        {{- $path := .Path}}
        {{- range .Nav.Groups}}
        <li class="dropdown{{if .Active $path}} active{{end}}">
          <button class="dropdown-toggle" type="button">{{.Title}}</button>
          <ul class="dropdown-menu">
            {{- range .Items}}
            <li><a href="{{.Path}}"{{if eq .Path $path}} class="active"{{end}}>{{.Title}}</a></li>
            {{- end}}
          </ul>
        </li>
        {{- end}}
        <li><a href="/contact"{{if eq .Path "/contact"}} class="active"{{end}}>Contact</a></li>
      </ul>
    </div>
  </nav>
  <main>
{{template "content" .}}
  </main>
  <footer class="footer">
    <div class="footer-inner">
      <div>
        <strong>{{.SiteName}}</strong>
        <p>Dedicated educator and software engineer committed to helping students reach their goals.</p>
      </div>
      <div>
        <h3>Courses</h3>
        <ul>
          <li>O Level (P1, P2)</li>
          <li>A Level (AS, A2)</li>
          <li>Intermediate (XI, XII)</li>
          <li>Programming</li>
        </ul>
      </div>
      <div>
        <h3>Contact</h3>
        <ul>
          <li>Email: saqibrazzak85@gmail.com</li>
          <li>Phone: +92 3352126988</li>
          <li>Location: Karachi, Pakistan</li>
        </ul>
      </div>
    </div>
  </footer>
  <script src="/static/nav.js"></script>
  {{- block "scripts" .}}{{end}}
</body>
</html>`

const homeTemplate = `{{define "content"}}
<section class="hero">
  <div class="badge">Educator &amp; Software Engineer</div>
  <h1>Guiding the Next Generation of <span class="accent">Thinkers &amp; Innovators</span></h1>
  <p class="tagline">
    With 11 years of dedicated experience teaching O Levels, A Levels and Intermediate students,
    with a strong background in software engineering.
  </p>
  <a class="button" href="#courses">Explore Courses</a>
</section>
<section class="stats">
  <div><strong>11+</strong><span>Years of Teaching</span></div>
  <div><strong>1000+</strong><span>Students Mentored</span></div>
  <div><strong>95%</strong><span>Success Rate</span></div>
</section>
<section class="courses" id="courses">
  <h2>Available Courses</h2>
  <p class="section-lead">Choose from a comprehensive range of courses designed for every stage.</p>
  <div class="level-grid">
    {{- range .Levels}}
    <div class="level-card">
      <h3>{{.Title}}</h3>
      <ul>
        {{- range .Courses}}
        <li><a href="{{.Path}}" style="--accent: {{.Accent}}"><strong>{{.Badge}}</strong><span>{{.Subtitle}}</span></a></li>
        {{- end}}
      </ul>
    </div>
    {{- end}}
  </div>
</section>
<section class="cta">
  <h2>Get In Touch</h2>
  <p>Ready to start your learning journey?</p>
  <a class="button" href="/contact">Contact</a>
</section>
{{end}}`

const courseTemplate = `{{define "content"}}
{{- $c := .Course}}
<section class="hero" style="--accent: {{$c.Accent}}">
  <div class="badge">{{$c.Badge}}</div>
  <h1>{{$c.Title}}<span class="accent">{{$c.Subtitle}}</span></h1>
  <p class="tagline">{{$c.Tagline}}</p>
</section>
{{- if .Intro}}
<section class="intro">{{.Intro}}</section>
{{- end}}
<section class="materials" style="--accent: {{$c.Accent}}">
  {{- if $c.ComingSoon}}
  <div class="coming-soon">
    <h2>Coming Soon!</h2>
    <p>Notes for <span class="accent">{{$c.Badge}}</span> will be added soon!</p>
  </div>
  {{- else}}
  {{- with $c.MaterialsHeading}}<h2>{{.}}</h2>{{end}}
  {{- range .Units}}
  <details class="unit">
    <summary>
      <span class="unit-title">{{.Title}}</span>
      {{- with .Subtitle}}<span class="unit-subtitle">{{.}}</span>{{end}}
      <span class="pill">{{len .Topics}} Topics</span>
    </summary>
    <ul class="topics">
      {{- $unit := .Title}}
      {{- range .Topics}}
      <li>
        <button type="button" class="topic" data-route="{{.Route}}" data-file="{{.File}}"
          data-discriminator="{{.Discriminator}}" data-title="{{.Title}}" data-unit="{{$unit}}">
          <span class="topic-number">{{.Number}}</span>
          <span class="topic-title">{{.Title}}</span>
        </button>
      </li>
      {{- end}}
    </ul>
  </details>
  {{- end}}
  {{- if .PDFs}}
  <div class="pdf-grid">
    {{- range .PDFs}}
    <div class="pdf-card">
      <h3>{{.Title}}</h3>
      <p class="pages">{{.Label}}</p>
      <p>{{.Description}}</p>
    </div>
    {{- end}}
  </div>
  {{- end}}
  {{- end}}
</section>

<div class="viewer" id="viewer" hidden data-state="closed" aria-modal="true" role="dialog">
  <div class="viewer-panel">
    <header class="viewer-header">
      <div>
        <h3 id="viewer-title"></h3>
        <p id="viewer-subtitle"></p>
      </div>
      <button type="button" class="viewer-close" id="viewer-close" aria-label="Close">&times;</button>
    </header>
    <div class="viewer-body">
      <div class="viewer-loading" data-show="loading">
        <div class="spinner"></div>
        <p>Loading document...</p>
      </div>
      <div class="viewer-error" data-show="error">
        <h3>Failed to load document</h3>
        <p>Please try again.</p>
        <button type="button" class="button" id="viewer-retry">Try Again</button>
      </div>
      <div class="viewer-content" data-show="content" id="viewer-content"></div>
    </div>
  </div>
</div>
{{end}}
{{define "scripts"}}<script src="/static/viewer.js"></script>{{end}}`

const contactTemplate = `{{define "content"}}
<section class="hero">
  <div class="badge">Contact</div>
  <h1>Get In Touch<span class="accent">Start Your Learning Journey</span></h1>
</section>
<section class="contact">
  <div class="contact-form">
    <h2>Send me a Message</h2>
    <form id="contact-form">
      <label>Full Name<input type="text" name="name" placeholder="Your full name" required></label>
      <label>Email<input type="email" name="email" placeholder="your.email@example.com" required></label>
      <label>Phone<input type="tel" name="phone" placeholder="+92 XXX XXXXXXX"></label>
      <label>Course Interest
        <select name="course">
          <option value="">Select a course</option>
          {{- range .Courses}}
          <option value="{{.Level}}-{{.Paper}}">{{.Badge}}</option>
          {{- end}}
        </select>
      </label>
      <label>Message<textarea name="message" rows="5" placeholder="Tell me about your goals and how I can help you..." required></textarea></label>
      <button type="submit" class="button">Send Message</button>
    </form>
    <div class="contact-sent" id="contact-sent" hidden>
      <h3>Message Sent!</h3>
      <p>Thank you for your inquiry. I'll get back to you soon.</p>
    </div>
  </div>
  <div class="contact-info">
    <div><h3>Email</h3><p>info@saqibrazzak.com</p></div>
    <div><h3>Phone</h3><p>+92 XXX XXXXXXX</p></div>
    <div><h3>Location</h3><p>Karachi, Pakistan</p></div>
  </div>
</section>
{{end}}
{{define "scripts"}}<script src="/static/contact.js"></script>{{end}}`
